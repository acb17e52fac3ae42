package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu   UserState = "main_menu"  // В главном меню
	StateProcessing UserState = "processing" // Идёт разбор изображения
)

// User представляет пользователя бота
type User struct {
	ID            int64     // Telegram User ID
	ChatID        int64     // Telegram Chat ID
	State         UserState // Текущее состояние пользователя
	ImagesScanned int       // Сколько изображений обработано
	CodesFound    int       // Сколько кодов найдено суммарно
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// RecordScan учитывает обработанное изображение и найденные в нём коды
func (u *User) RecordScan(codes int) {
	u.ImagesScanned++
	u.CodesFound += codes
}
