package port

import (
	"context"

	"zone-guard/internal/domain/entity"
)

// ObjectDetector интерфейс детектора объектов
type ObjectDetector interface {
	// Detect ищет объекты на кадре. Порядок детекций не гарантирован, список может быть пустым.
	Detect(ctx context.Context, frame Frame) ([]entity.Detection, error)
}
