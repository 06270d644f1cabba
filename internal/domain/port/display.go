package port

import "zone-guard/internal/domain/entity"

// Display окно вывода
type Display interface {
	// Show рисует сцену на копии кадра и выводит результат
	Show(frame Frame, scene *entity.Scene) error

	// PollEvents забирает накопленные события мыши и клавиатуры
	PollEvents() []entity.Event

	Close() error
}

// SnapshotEncoder кодирует кадр со сценой в JPEG
type SnapshotEncoder interface {
	Snapshot(frame Frame, scene *entity.Scene) ([]byte, error)
}
