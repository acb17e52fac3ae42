package zxing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/aztec"
	"github.com/makiuchi-d/gozxing/datamatrix"
	multiqr "github.com/makiuchi-d/gozxing/multi/qrcode"
	"github.com/makiuchi-d/gozxing/oned"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
	"github.com/Bimbetta/Scanner/internal/domain/port"
)

// symbologies сопоставляет форматы gozxing человекочитаемым символикам.
// Таблица покрывает весь набор форматов, включая те, для которых у
// gozxing пока нет декодера (PDF417, DataBar): результат с таким
// форматом не теряется, а проходит насквозь.
var symbologies = map[gozxing.BarcodeFormat]entity.Symbology{
	gozxing.BarcodeFormat_EAN_8:        entity.SymbologyEAN8,
	gozxing.BarcodeFormat_EAN_13:       entity.SymbologyEAN13,
	gozxing.BarcodeFormat_UPC_A:        entity.SymbologyUPCA,
	gozxing.BarcodeFormat_UPC_E:        entity.SymbologyUPCE,
	gozxing.BarcodeFormat_CODE_39:      entity.SymbologyCode39,
	gozxing.BarcodeFormat_CODE_93:      entity.SymbologyCode93,
	gozxing.BarcodeFormat_CODE_128:     entity.SymbologyCode128,
	gozxing.BarcodeFormat_CODABAR:      entity.SymbologyCodabar,
	gozxing.BarcodeFormat_RSS_14:       entity.SymbologyDataBar,
	gozxing.BarcodeFormat_RSS_EXPANDED: entity.SymbologyDataBarExpanded,
	gozxing.BarcodeFormat_ITF:          entity.SymbologyITF,
	gozxing.BarcodeFormat_QR_CODE:      entity.SymbologyQR,
	gozxing.BarcodeFormat_PDF_417:      entity.SymbologyPDF417,
	gozxing.BarcodeFormat_DATA_MATRIX:  entity.SymbologyDataMatrix,
	gozxing.BarcodeFormat_AZTEC:        entity.SymbologyAztec,
}

// multipleReader — общий вид ридера, возвращающего несколько результатов
// с одного изображения (как multi.MultipleBarcodeReader в gozxing).
type multipleReader interface {
	DecodeMultiple(img *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error)
}

// singleReader адаптирует обычный gozxing.Reader к multipleReader:
// один вызов Decode даёт максимум один результат.
type singleReader struct {
	reader gozxing.Reader
}

func (s singleReader) DecodeMultiple(img *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) ([]*gozxing.Result, error) {
	result, err := s.reader.Decode(img, hints)
	if err != nil {
		return nil, err
	}
	return []*gozxing.Result{result}, nil
}

// Scanner оборачивает набор ридеров gozxing. Сам разбор символов делает
// библиотека; здесь только вызов, маппинг типов и изоляция сбоев.
type Scanner struct {
	readers []multipleReader
	hints   map[gozxing.DecodeHintType]interface{}
	logger  *log.Logger
}

// NewScanner собирает сканер со всеми семействами кодов, для которых у
// gozxing есть декодер: семейство UPC/EAN, Code 39/93/128, Codabar,
// Interleaved 2 of 5, QR (несколько на кадр), Data Matrix, Aztec.
func NewScanner(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	readers := []multipleReader{
		singleReader{oned.NewMultiFormatUPCEANReader(hints)},
		singleReader{oned.NewCode39Reader()},
		singleReader{oned.NewCode93Reader()},
		singleReader{oned.NewCode128Reader()},
		singleReader{oned.NewCodaBarReader()},
		singleReader{oned.NewITFReader()},
		multiqr.NewQRCodeMultiReader(),
		singleReader{datamatrix.NewDataMatrixReader()},
		singleReader{aztec.NewAztecReader()},
	}

	return &Scanner{
		readers: readers,
		hints:   hints,
		logger:  logger,
	}
}

// Scan ищет коды на одном варианте изображения. Отсутствие кодов —
// пустой срез без ошибки; сбой одного ридера не прерывает остальные.
func (s *Scanner) Scan(ctx context.Context, variant entity.ImageVariant) ([]entity.Detection, error) {
	_ = ctx
	bitmap, err := gozxing.NewBinaryBitmapFromImage(variant.Image)
	if err != nil {
		return nil, fmt.Errorf("prepare bitmap: %w", err)
	}

	detections := make([]entity.Detection, 0)
	for _, reader := range s.readers {
		results, err := decodeMultiple(reader, bitmap, s.hints)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			s.logger.Printf("reader failed on variant %d (%s): %v", variant.Ordinal, variant.Kind, err)
			continue
		}
		for _, result := range results {
			detections = append(detections, toDetection(result, variant.Ordinal))
		}
	}
	return detections, nil
}

// decodeMultiple вызывает ридер, превращая панику в ошибку.
func decodeMultiple(reader multipleReader, bitmap *gozxing.BinaryBitmap, hints map[gozxing.DecodeHintType]interface{}) (results []*gozxing.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reader panic: %v", r)
		}
	}()
	return reader.DecodeMultiple(bitmap, hints)
}

// isNotFound отличает «кода нет» от настоящего сбоя ридера.
func isNotFound(err error) bool {
	var notFound gozxing.NotFoundException
	return errors.As(err, &notFound)
}

// toDetection переводит результат gozxing в доменную детекцию.
func toDetection(result *gozxing.Result, ordinal int) entity.Detection {
	format := result.GetBarcodeFormat()
	symbology, ok := symbologies[format]
	if !ok {
		symbology = entity.UnknownSymbology(format.String())
	}

	points := result.GetResultPoints()
	polygon := make([]entity.Point, 0, len(points))
	for _, p := range points {
		polygon = append(polygon, entity.Point{X: int(p.GetX()), Y: int(p.GetY())})
	}

	return entity.Detection{
		// Невалидные байты заменяются, детекция не отбрасывается.
		Payload:   strings.ToValidUTF8(result.GetText(), "�"),
		Symbology: symbology,
		RawType:   format.String(),
		Quality:   nil, // gozxing не сообщает оценку качества
		Rect:      boundingRect(polygon),
		Polygon:   polygon,
		Variant:   ordinal,
	}
}

// boundingRect строит ограничивающий прямоугольник по угловым точкам.
func boundingRect(points []entity.Point) entity.Rect {
	if len(points) == 0 {
		return entity.Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return entity.Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Проверка реализации интерфейса
var _ port.CodeScanner = (*Scanner)(nil)
