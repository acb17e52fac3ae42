package port

import "image"

// ImageLoader интерфейс декодера байтов в растровое изображение
type ImageLoader interface {
	// Load разбирает байты неизвестного формата (JPEG/PNG/и т.д.)
	Load(data []byte) (image.Image, error)
}
