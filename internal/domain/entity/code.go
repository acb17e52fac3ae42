package entity

import (
	"fmt"
	"image"
)

// Symbology — тип оптического кода в человекочитаемом виде.
type Symbology string

const (
	SymbologyEAN8            Symbology = "EAN-8"
	SymbologyEAN13           Symbology = "EAN-13"
	SymbologyUPCA            Symbology = "UPC-A"
	SymbologyUPCE            Symbology = "UPC-E"
	SymbologyCode39          Symbology = "Code 39"
	SymbologyCode93          Symbology = "Code 93"
	SymbologyCode128         Symbology = "Code 128"
	SymbologyCodabar         Symbology = "Codabar"
	SymbologyDataBar         Symbology = "DataBar"
	SymbologyDataBarExpanded Symbology = "DataBar Expanded"
	SymbologyITF             Symbology = "Interleaved 2 of 5"
	SymbologyQR              Symbology = "QR Code"
	SymbologyPDF417          Symbology = "PDF417"
	SymbologyDataMatrix      Symbology = "Data Matrix"
	SymbologyAztec           Symbology = "Aztec Code"
)

// UnknownSymbology помечает тип, который декодер сообщил, но мы не знаем.
// Исходный код типа сохраняется, а не отбрасывается.
func UnknownSymbology(raw string) Symbology {
	return Symbology(fmt.Sprintf("unknown type (%s)", raw))
}

// IsRetail сообщает, относится ли символика к товарным кодам.
func (s Symbology) IsRetail() bool {
	switch s {
	case SymbologyEAN13, SymbologyEAN8, SymbologyUPCA, SymbologyUPCE:
		return true
	}
	return false
}

// Point — точка в координатах исходного изображения.
type Point struct {
	X int
	Y int
}

// Rect — ограничивающий прямоугольник кода.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// VariantKind — какое преобразование породило вариант изображения.
type VariantKind string

const (
	VariantOriginal  VariantKind = "original"
	VariantGrayscale VariantKind = "grayscale"
	VariantEqualized VariantKind = "equalized"
	VariantAdaptive  VariantKind = "adaptive_threshold"
	VariantOtsu      VariantKind = "otsu_threshold"
)

// ImageVariant — одна предобработанная версия исходного изображения.
// Преобразования не меняют размер, поэтому геометрия найденных кодов
// остаётся валидной в координатах оригинала.
type ImageVariant struct {
	Image   image.Image
	Kind    VariantKind
	Ordinal int // порядок генерации, используется как tie-break при дедупликации
}

// Detection — один распознанный код.
type Detection struct {
	Payload   string    // декодированный текст (невалидные байты заменены)
	Symbology Symbology // тип кода
	RawType   string    // исходный код типа из декодера
	Quality   *int      // оценка качества; nil, если декодер её не сообщает
	Rect      Rect      // ограничивающий прямоугольник
	Polygon   []Point   // угловые точки, может быть пустым
	Variant   int       // ordinal варианта, на котором код найден впервые
}

// DedupKey — ключ логической идентичности кода. Геометрия в ключ
// намеренно не входит: одинаковое содержимое в разных местах кадра
// схлопывается в одну запись.
type DedupKey struct {
	Payload   string
	Symbology Symbology
}

// Key возвращает ключ дедупликации детекции.
func (d Detection) Key() DedupKey {
	return DedupKey{Payload: d.Payload, Symbology: d.Symbology}
}

// DecodeReport — итог разбора одного изображения.
type DecodeReport struct {
	ImageWidth  int
	ImageHeight int
	Channels    int
	Codes       []Detection // в порядке первого обнаружения, без дубликатов
}

// TotalCodes возвращает количество найденных кодов.
func (r *DecodeReport) TotalCodes() int {
	return len(r.Codes)
}
