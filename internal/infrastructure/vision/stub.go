//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

var errNoGoCV = errors.New("gocv build tag is not enabled")

// Capture заглушка (без OpenCV)
type Capture struct{}

// OpenCapture возвращает ошибку, если сборка без тега gocv.
func OpenCapture(source string) (*Capture, error) {
	_ = source
	return nil, errNoGoCV
}

func (c *Capture) Read(ctx context.Context) (port.Frame, error) {
	_ = ctx
	return nil, errNoGoCV
}

func (c *Capture) Close() error { return nil }

// YOLODetector заглушка (без OpenCV)
type YOLODetector struct {
	InputSize    int
	MinScore     float32
	NMSThreshold float32
}

// NewYOLODetector возвращает ошибку, если сборка без тега gocv.
func NewYOLODetector(modelPath string, labels []string, inputSize int, nmsThreshold float64) (*YOLODetector, error) {
	_, _, _, _ = modelPath, labels, inputSize, nmsThreshold
	return nil, errNoGoCV
}

func (d *YOLODetector) Detect(ctx context.Context, frame port.Frame) ([]entity.Detection, error) {
	_, _ = ctx, frame
	return nil, errNoGoCV
}

func (d *YOLODetector) Close() error { return nil }

// Window заглушка (без OpenCV)
type Window struct{}

// NewWindow возвращает ошибку, если сборка без тега gocv.
func NewWindow(title string) (*Window, error) {
	_ = title
	return nil, errNoGoCV
}

func (w *Window) Show(frame port.Frame, scene *entity.Scene) error {
	_, _ = frame, scene
	return errNoGoCV
}

func (w *Window) PollEvents() []entity.Event { return nil }

func (w *Window) Snapshot(frame port.Frame, scene *entity.Scene) ([]byte, error) {
	_, _ = frame, scene
	return nil, errNoGoCV
}

func (w *Window) Close() error { return nil }
