package port

import (
	"context"
	"errors"
	"image"
)

// ErrCaptureExhausted источник больше не отдаёт кадры
var ErrCaptureExhausted = errors.New("capture exhausted")

// Frame захваченный кадр. Размер кадра постоянен в течение сессии.
type Frame interface {
	Bounds() image.Rectangle
	Close() error
}

// FrameSource интерфейс устройства захвата видео
type FrameSource interface {
	// Read возвращает следующий кадр или ErrCaptureExhausted
	Read(ctx context.Context) (Frame, error)

	// Close освобождает устройство
	Close() error
}
