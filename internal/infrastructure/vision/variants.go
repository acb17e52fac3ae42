//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"image/draw"
	"log"

	"github.com/anthonynsimon/bild/segment"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
	"github.com/Bimbetta/Scanner/internal/domain/port"
)

// VariantGenerator строит предобработанные версии изображения на чистом Go.
// Сборка с тегом gocv использует OpenCV-реализацию из variants_gocv.go.
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
// оригинал, оттенки серого, выравнивание гистограммы, адаптивный порог,
// глобальный порог Оцу. Размеры совпадают с оригиналом.
func (g *VariantGenerator) Generate(img image.Image) []entity.ImageVariant {
	gray := toGray(img)
	return []entity.ImageVariant{
		{Image: img, Kind: entity.VariantOriginal, Ordinal: 0},
		{Image: gray, Kind: entity.VariantGrayscale, Ordinal: 1},
		{Image: equalize(gray), Kind: entity.VariantEqualized, Ordinal: 2},
		{Image: adaptiveThreshold(gray, g.BlockSize, g.Offset), Kind: entity.VariantAdaptive, Ordinal: 3},
		{Image: segment.Threshold(gray, otsuLevel(gray)), Kind: entity.VariantOtsu, Ordinal: 4},
	}
}

// toGray переводит изображение в яркостный канал; уже серое не копирует.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// histogram считает распределение яркостей по 256 корзинам.
func histogram(src *image.Gray) (hist [256]int, total int) {
	b := src.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for _, v := range row {
			hist[v]++
		}
	}
	return hist, w * b.Dy()
}

// equalize растягивает контраст на весь диапазон яркостей через CDF.
func equalize(src *image.Gray) *image.Gray {
	hist, total := histogram(src)
	if total == 0 {
		return src
	}

	cdfMin := 0
	for _, n := range hist {
		if n > 0 {
			cdfMin = n
			break
		}
	}
	if total == cdfMin {
		// Однотонное изображение, выравнивать нечего.
		dst := image.NewGray(src.Bounds())
		copy(dst.Pix, src.Pix)
		return dst
	}

	var lut [256]uint8
	cdf := 0
	for i, n := range hist {
		cdf += n
		if cdf >= cdfMin {
			lut[i] = uint8((cdf - cdfMin) * 255 / (total - cdfMin))
		}
	}

	b := src.Bounds()
	w := b.Dx()
	dst := image.NewGray(image.Rect(0, 0, w, b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, v := range srcRow {
			dstRow[x] = lut[v]
		}
	}
	return dst
}

// adaptiveThreshold бинаризует по локальному среднему в окне block×block:
// пиксель белый, если он ярче среднего минус offset. Среднее считается
// через интегральное изображение, у краёв окно обрезается границами.
func adaptiveThreshold(src *image.Gray, block, offset int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	integral := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(row[x])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	r := block / 2
	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		y0, y1 := max(0, y-r), min(h-1, y+r)
		for x := 0; x < w; x++ {
			x0, x1 := max(0, x-r), min(w-1, x+r)
			sum := integral[(y1+1)*(w+1)+x1+1] -
				integral[y0*(w+1)+x1+1] -
				integral[(y1+1)*(w+1)+x0] +
				integral[y0*(w+1)+x0]
			area := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			mean := int(sum / area)
			if int(srcRow[x]) > mean-offset {
				dstRow[x] = 255
			}
		}
	}
	return dst
}

// otsuLevel подбирает глобальный порог, максимизируя межклассовую дисперсию.
func otsuLevel(src *image.Gray) uint8 {
	hist, total := histogram(src)
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumBack, weightBack float64
	var maxVariance float64
	var level uint8
	for i, n := range hist {
		weightBack += float64(n)
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(i) * float64(n)
		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		variance := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if variance > maxVariance {
			maxVariance = variance
			level = uint8(i)
		}
	}
	return level
}

// Проверка реализации интерфейса
var _ port.VariantGenerator = (*VariantGenerator)(nil)
