package port

import (
	"context"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет состояние и статистику пользователя
	Save(ctx context.Context, user *entity.User) error
}
