package main

import (
	"log"
	"os"

	"github.com/Bimbetta/Scanner/config"
	telegram "github.com/Bimbetta/Scanner/internal/api"
	"github.com/Bimbetta/Scanner/internal/container"
	"github.com/Bimbetta/Scanner/internal/infrastructure/storage"
	"github.com/Bimbetta/Scanner/internal/infrastructure/vision"
	"github.com/Bimbetta/Scanner/internal/infrastructure/zxing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Собираем пайплайн декодирования
	loader := vision.NewLoader()
	variants := vision.NewVariantGenerator(logger)
	scanner := zxing.NewScanner(logger)

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, loader, variants, scanner, logger)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, logger)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	logger.Println("Bot is running...")
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
