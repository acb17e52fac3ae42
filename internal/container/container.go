package container

import (
	"log"

	app "github.com/Bimbetta/Scanner/internal/application"
	"github.com/Bimbetta/Scanner/internal/domain/port"
)

type Container struct {
	UserService   *app.UserService
	DecodeService *app.DecodeService
}

func New(userRepo port.UserRepository, loader port.ImageLoader, variants port.VariantGenerator, scanner port.CodeScanner, logger *log.Logger) *Container {
	userService := app.NewUserService(userRepo)
	decodeService := app.NewDecodeService(loader, variants, scanner, logger)

	return &Container{
		UserService:   userService,
		DecodeService: decodeService,
	}
}
