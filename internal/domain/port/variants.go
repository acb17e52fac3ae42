package port

import (
	"image"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
)

// VariantGenerator интерфейс генератора предобработанных версий изображения
type VariantGenerator interface {
	// Generate возвращает варианты в фиксированном порядке, начиная с оригинала.
	// Детерминирован и не ошибается; варианты не меняют размер изображения.
	Generate(img image.Image) []entity.ImageVariant
}
