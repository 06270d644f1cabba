package port

import (
	"context"

	"zone-guard/internal/domain/entity"
)

// IncidentRepository интерфейс хранилища инцидентов
type IncidentRepository interface {
	// Add сохраняет инцидент
	Add(ctx context.Context, incident *entity.Incident) error

	// Recent возвращает последние инциденты, новые первыми
	Recent(ctx context.Context, limit int) ([]*entity.Incident, error)

	// Clear удаляет все инциденты
	Clear(ctx context.Context) error
}
