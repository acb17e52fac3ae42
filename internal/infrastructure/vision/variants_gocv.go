//go:build gocv
// +build gocv

package vision

import (
	"image"
	"log"

	"gocv.io/x/gocv"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
	"github.com/Bimbetta/Scanner/internal/domain/port"
)

// VariantGenerator строит предобработанные версии изображения через OpenCV.
// Контракт тот же, что у чистой реализации из variants.go.
type VariantGenerator struct {
	BlockSize int // сторона окна адаптивного порога, нечётная
	Offset    int // константа, вычитаемая из локального среднего

	logger *log.Logger
}

// NewVariantGenerator создаёт генератор с параметрами как у исходного пайплайна.
func NewVariantGenerator(logger *log.Logger) *VariantGenerator {
	if logger == nil {
		logger = log.Default()
	}
	return &VariantGenerator{BlockSize: 11, Offset: 2, logger: logger}
}

// Generate возвращает пять вариантов в фиксированном порядке:
// оригинал, оттенки серого, выравнивание гистограммы, адаптивный порог
// (гауссово окно), глобальный порог Оцу. Размеры совпадают с оригиналом.
func (g *VariantGenerator) Generate(img image.Image) []entity.ImageVariant {
	variants := []entity.ImageVariant{
		{Image: img, Kind: entity.VariantOriginal, Ordinal: 0},
	}

	mat, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		// Сканирование продолжается по одному оригиналу.
		g.logger.Printf("variant pipeline degraded, mat conversion failed: %v", err)
		return variants
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(gray, &equalized)

	adaptive := gocv.NewMat()
	defer adaptive.Close()
	gocv.AdaptiveThreshold(gray, &adaptive, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, g.BlockSize, float32(g.Offset))

	otsu := gocv.NewMat()
	defer otsu.Close()
	gocv.Threshold(gray, &otsu, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	steps := []struct {
		mat  gocv.Mat
		kind entity.VariantKind
	}{
		{gray, entity.VariantGrayscale},
		{equalized, entity.VariantEqualized},
		{adaptive, entity.VariantAdaptive},
		{otsu, entity.VariantOtsu},
	}
	for i, step := range steps {
		converted, err := step.mat.ToImage()
		if err != nil {
			g.logger.Printf("variant %d (%s) skipped, image conversion failed: %v", i+1, step.kind, err)
			continue
		}
		variants = append(variants, entity.ImageVariant{
			Image:   converted,
			Kind:    step.kind,
			Ordinal: i + 1,
		})
	}
	return variants
}

// Проверка реализации интерфейса
var _ port.VariantGenerator = (*VariantGenerator)(nil)
