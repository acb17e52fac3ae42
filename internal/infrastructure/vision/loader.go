package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // регистрация WebP-декодера

	"github.com/Bimbetta/Scanner/internal/domain/port"
)

// ErrUnreadableImage возвращается, когда байты не удалось разобрать
// ни одним поддерживаемым форматом изображения.
var ErrUnreadableImage = errors.New("unreadable image")

// Loader декодирует байты в изображение. JPEG/PNG/GIF/BMP/TIFF приходят
// вместе с imaging, WebP регистрируется отдельно.
type Loader struct{}

// NewLoader создаёт загрузчик изображений
func NewLoader() *Loader {
	return &Loader{}
}

// Load разбирает байты в изображение с учётом EXIF-ориентации
func (l *Loader) Load(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return img, nil
}

// Проверка реализации интерфейса
var _ port.ImageLoader = (*Loader)(nil)
