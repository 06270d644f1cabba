//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// YOLODetector детектор YOLOv8 в формате ONNX на OpenCV DNN
type YOLODetector struct {
	net          gocv.Net
	labels       []string
	InputSize    int
	MinScore     float32
	NMSThreshold float32
}

// NewYOLODetector загружает модель и имена классов
func NewYOLODetector(modelPath string, labels []string, inputSize int, nmsThreshold float64) (*YOLODetector, error) {
	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load ONNX model from %s", modelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &YOLODetector{
		net:          net,
		labels:       labels,
		InputSize:    inputSize,
		MinScore:     0.25,
		NMSThreshold: float32(nmsThreshold),
	}, nil
}

// Detect запускает сеть на кадре и возвращает детекции в пикселях кадра
func (d *YOLODetector) Detect(ctx context.Context, frame port.Frame) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, ok := frame.(*Frame)
	if !ok {
		return nil, fmt.Errorf("unsupported frame type %T", frame)
	}
	if f.Mat.Empty() {
		return nil, errors.New("empty image")
	}

	blob := gocv.BlobFromImage(f.Mat, 1.0/255.0, image.Pt(d.InputSize, d.InputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	sizes := output.Size()
	if len(sizes) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	bounds := f.Bounds()
	sx := float64(bounds.Dx()) / float64(d.InputSize)
	sy := float64(bounds.Dy()) / float64(d.InputSize)
	candidates := decodeYOLOv8(data, sizes[1], sizes[2], sx, sy, bounds, d.MinScore)

	// подавление немаксимумов отдельно по каждому классу
	byClass := make(map[int][]candidate)
	for _, c := range candidates {
		byClass[c.class] = append(byClass[c.class], c)
	}

	detections := make([]entity.Detection, 0, len(candidates))
	for class, group := range byClass {
		if class >= len(d.labels) {
			continue
		}
		boxes := make([]image.Rectangle, len(group))
		scores := make([]float32, len(group))
		for i, c := range group {
			boxes[i] = c.box
			scores[i] = c.score
		}
		for _, idx := range gocv.NMSBoxes(boxes, scores, d.MinScore, d.NMSThreshold) {
			c := group[idx]
			detections = append(detections, entity.Detection{
				Box:        entity.BBox{X1: c.box.Min.X, Y1: c.box.Min.Y, X2: c.box.Max.X, Y2: c.box.Max.Y},
				Label:      d.labels[class],
				Confidence: float64(c.score),
			})
		}
	}
	return detections, nil
}

// Close освобождает сеть
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

var _ port.ObjectDetector = (*YOLODetector)(nil)
