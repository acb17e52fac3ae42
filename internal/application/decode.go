package app

import (
	"context"
	"image"
	"image/color"
	"log"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
	"github.com/Bimbetta/Scanner/internal/domain/port"
)

// DecodeService прогоняет изображение через варианты предобработки,
// сканирует каждый и собирает отчёт без дубликатов.
type DecodeService struct {
	loader   port.ImageLoader
	variants port.VariantGenerator
	scanner  port.CodeScanner
	logger   *log.Logger
}

// NewDecodeService создаёт сервис декодирования кодов.
func NewDecodeService(loader port.ImageLoader, variants port.VariantGenerator, scanner port.CodeScanner, logger *log.Logger) *DecodeService {
	if logger == nil {
		logger = log.Default()
	}
	return &DecodeService{
		loader:   loader,
		variants: variants,
		scanner:  scanner,
		logger:   logger,
	}
}

// Decode разбирает изображение и возвращает отчёт о найденных кодах.
// Нечитаемое изображение — ошибка; ноль найденных кодов — успех с пустым
// списком. Сбой сканирования одного варианта логируется, остальные
// варианты обрабатываются дальше.
func (s *DecodeService) Decode(ctx context.Context, imageData []byte) (*entity.DecodeReport, error) {
	img, err := s.loader.Load(imageData)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	report := &entity.DecodeReport{
		ImageWidth:  bounds.Dx(),
		ImageHeight: bounds.Dy(),
		Channels:    channelCount(img),
		Codes:       make([]entity.Detection, 0),
	}

	// Устойчивое объединение по ключу (payload, символика): выживает
	// первая встреченная детекция, порядок вариантов фиксирован.
	seen := make(map[entity.DedupKey]struct{})
	for _, variant := range s.variants.Generate(img) {
		detections, err := s.scanner.Scan(ctx, variant)
		if err != nil {
			s.logger.Printf("scan failed on variant %d (%s): %v", variant.Ordinal, variant.Kind, err)
			continue
		}
		for _, d := range detections {
			key := d.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			report.Codes = append(report.Codes, d)
		}
	}

	return report, nil
}

// channelCount определяет число каналов по цветовой модели изображения.
func channelCount(img image.Image) int {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model, color.CMYKModel:
		return 4
	default:
		return 3
	}
}
