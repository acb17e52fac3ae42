package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "github.com/Bimbetta/Scanner/internal/application"
	"github.com/Bimbetta/Scanner/internal/container"
	"github.com/Bimbetta/Scanner/internal/domain/entity"
)

const (
	msgStart = `🔍 Бот-декодер оптических кодов

Распознаю на фото:
• QR-коды
• Штрихкоды (EAN-8, EAN-13, UPC-A, UPC-E, Code 39, 93, 128 и другие)
• Aztec, Data Matrix, PDF417

📸 Как пользоваться:
1. Отправьте фото с кодом (или несколькими)
2. Получите тип, содержимое и позицию каждого кода

Несколько стратегий предобработки повышают шанс распознать код
даже на шумном или плохо освещённом снимке.

📋 Команды:
/help — справка
/stats — ваша статистика`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото с оптическим кодом
2️⃣ Бот прогонит снимок через несколько вариантов предобработки
3️⃣ Вы получите все найденные коды с расшифровкой содержимого

💡 Рекомендации:
• Снимайте при равномерном освещении без бликов
• Код должен быть в фокусе и занимать заметную часть кадра
• Следите за контрастом

📋 Команды:
/stats — ваша статистика`

	msgGuide = `📖 Справочник типов кодов

🏷️ Штрихкоды 1D:
• EAN-13/8 — товары в рознице
• UPC-A/E — американские товары
• Code 39 — промышленность, инвентарь
• Code 128 — логистика, транспорт
• Codabar — библиотеки, банки крови

📱 Коды 2D:
• QR Code — ссылки, текст, WiFi, визитки
• Data Matrix — промышленная маркировка
• Aztec Code — билеты, транспорт
• PDF417 — документы`

	msgAbout = `ℹ️ О боте

Несколько вариантов предобработки изображения (оттенки серого,
выравнивание гистограммы, адаптивный и глобальный пороги) подаются
в мультиформатный декодер, результаты объединяются без дубликатов.

Отправьте фото с кодом, чтобы попробовать.`

	msgSendPhoto       = "📸 Отправьте фото с оптическим кодом."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "🔍 Анализирую изображение..."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте другое фото."
	msgUnreadableImage = "❌ Не удалось прочитать изображение. Отправьте файл в формате JPEG или PNG."

	msgNoCodes = `❌ Коды не найдены

💡 Как улучшить распознавание:
• Проверьте, что изображение чёткое
• Избегайте бликов и теней
• Код должен попадать в кадр целиком
• Контраст должен быть достаточным`
)

// Bot представляет Telegram-бота
type Bot struct {
	api     *tgbotapi.BotAPI
	users   *app.UserService
	decoder *app.DecodeService
	logger  *log.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, services *container.Container, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:     api,
		users:   services.UserService,
		decoder: services.DecodeService,
		logger:  logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		}
	}

	return nil
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateMainMenu)
		b.sendStart(msg.Chat.ID)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "stats":
		user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
		if err != nil {
			b.logger.Printf("Error getting user: %v", err)
			return
		}
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"📊 Ваша статистика:\n• Изображений обработано: %d\n• Кодов найдено: %d",
			user.ImagesScanned, user.CodesFound))

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// sendStart отправляет приветствие с inline-клавиатурой
func (b *Bot) sendStart(chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Справочник кодов", "guide"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ О боте", "about"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, msgStart)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Printf("Error sending message: %v", err)
	}
}

// handleCallback обрабатывает нажатия inline-кнопок
func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Printf("Error answering callback: %v", err)
	}

	var text string
	switch query.Data {
	case "guide":
		text = msgGuide
	case "about":
		text = msgAbout
	default:
		return
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Printf("Error editing message: %v", err)
	}
}

// handlePhoto обрабатывает входящее фото
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateProcessing)
	defer b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, entity.StateMainMenu)

	processing, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, msgProcessing))
	if err != nil {
		b.logger.Printf("Error sending message: %v", err)
		return
	}

	// Фото с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.logger.Printf("Error downloading photo: %v", err)
		b.editMessage(msg.Chat.ID, processing.MessageID, msgProcessingError)
		return
	}

	report, err := b.decoder.Decode(ctx, imageData)
	if err != nil {
		b.logger.Printf("Error decoding image: %v", err)
		b.editMessage(msg.Chat.ID, processing.MessageID, msgUnreadableImage)
		return
	}

	if _, err := b.users.RecordScan(ctx, msg.From.ID, msg.Chat.ID, report.TotalCodes()); err != nil {
		b.logger.Printf("Error recording scan: %v", err)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, processing.MessageID, formatReport(report))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Printf("Error editing message: %v", err)
	}
}

// formatReport форматирует отчёт для отправки пользователю
func formatReport(report *entity.DecodeReport) string {
	if report.TotalCodes() == 0 {
		return msgNoCodes
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Найдено кодов: %d\n\n", report.TotalCodes())
	fmt.Fprintf(&sb, "📐 Изображение: %dx%d, каналов: %d\n\n", report.ImageWidth, report.ImageHeight, report.Channels)

	for i, code := range report.Codes {
		fmt.Fprintf(&sb, "📊 Код #%d — %s\n", i+1, code.Symbology)
		fmt.Fprintf(&sb, "```\n%s\n```\n", code.Payload)
		fmt.Fprintf(&sb, "• Позиция: (%d, %d)\n", code.Rect.X, code.Rect.Y)
		fmt.Fprintf(&sb, "• Размер: %d×%d px\n", code.Rect.Width, code.Rect.Height)
		if code.Quality != nil {
			fmt.Fprintf(&sb, "• Качество: %d\n", *code.Quality)
		}
		sb.WriteString(formatClassification(entity.Classify(code.Symbology, code.Payload)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatClassification форматирует анализ содержимого кода
func formatClassification(c entity.Classification) string {
	var sb strings.Builder

	if c.Product != nil {
		fmt.Fprintf(&sb, "• Код страны: %s\n", c.Product.Country)
		if c.Product.Manufacturer != "" {
			fmt.Fprintf(&sb, "• Код производителя: %s\n", c.Product.Manufacturer)
		}
		fmt.Fprintf(&sb, "• Код товара: %s\n", c.Product.Product)
		fmt.Fprintf(&sb, "• Контрольная цифра: %s\n", c.Product.CheckDigit)
		return sb.String()
	}

	switch c.Type {
	case entity.ContentURL:
		sb.WriteString("• Тип: URL\n")
	case entity.ContentEmail:
		sb.WriteString("• Тип: Email\n")
	case entity.ContentPhone:
		sb.WriteString("• Тип: Телефон\n")
	case entity.ContentWiFi:
		sb.WriteString("• Тип: Конфигурация WiFi\n")
		if c.SSID != "" {
			fmt.Fprintf(&sb, "• SSID: %s\n", c.SSID)
		}
	case entity.ContentVCard:
		sb.WriteString("• Тип: Визитка (vCard)\n")
	default:
		sb.WriteString("• Тип: Текст\n")
	}
	fmt.Fprintf(&sb, "• Длина: %d символов\n", c.Length)

	return sb.String()
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Printf("Error sending message: %v", err)
	}
}

// editMessage заменяет текст ранее отправленного сообщения
func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Printf("Error editing message: %v", err)
	}
}
