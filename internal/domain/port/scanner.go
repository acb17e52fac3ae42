package port

import (
	"context"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
)

// CodeScanner интерфейс внешнего декодера оптических кодов.
// Узкая граница: конкретную библиотеку можно заменить, не трогая
// агрегацию и классификацию.
type CodeScanner interface {
	// Scan ищет коды на одном варианте изображения, может вернуть пустой срез
	Scan(ctx context.Context, variant entity.ImageVariant) ([]entity.Detection, error)
}
