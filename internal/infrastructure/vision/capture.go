//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"os"
	"strconv"

	"gocv.io/x/gocv"

	"zone-guard/internal/domain/port"
)

// Frame кадр OpenCV
type Frame struct {
	Mat gocv.Mat
}

// Bounds размер кадра
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Mat.Cols(), f.Mat.Rows())
}

// Close освобождает память кадра
func (f *Frame) Close() error {
	return f.Mat.Close()
}

// Capture камера или видеофайл
type Capture struct {
	vc *gocv.VideoCapture
}

// OpenCapture открывает видеофайл, если он существует, иначе камеру по номеру.
func OpenCapture(source string) (*Capture, error) {
	var (
		vc  *gocv.VideoCapture
		err error
	)
	if _, statErr := os.Stat(source); statErr == nil {
		vc, err = gocv.VideoCaptureFile(source)
	} else {
		id, convErr := strconv.Atoi(source)
		if convErr != nil {
			return nil, fmt.Errorf("camera source %q is neither a file nor a device index", source)
		}
		vc, err = gocv.VideoCaptureDevice(id)
	}
	if err != nil {
		return nil, fmt.Errorf("open capture %q: %w", source, err)
	}
	return &Capture{vc: vc}, nil
}

// Read читает следующий кадр. Каждый кадр владеет своей Mat.
func (c *Capture) Read(ctx context.Context) (port.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mat := gocv.NewMat()
	if ok := c.vc.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, port.ErrCaptureExhausted
	}
	return &Frame{Mat: mat}, nil
}

// Close освобождает устройство, повторный вызов ничего не делает
func (c *Capture) Close() error {
	if c.vc == nil {
		return nil
	}
	err := c.vc.Close()
	c.vc = nil
	return err
}

var _ port.FrameSource = (*Capture)(nil)
