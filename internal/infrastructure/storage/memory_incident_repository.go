package storage

import (
	"context"
	"sync"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// DefaultHistoryLimit сколько инцидентов хранить в памяти
const DefaultHistoryLimit = 20

// MemoryIncidentRepository in-memory хранилище последних инцидентов
type MemoryIncidentRepository struct {
	mu        sync.RWMutex
	limit     int
	incidents []*entity.Incident // старые первыми
}

// NewMemoryIncidentRepository создаёт хранилище, которое держит не больше limit инцидентов
func NewMemoryIncidentRepository(limit int) *MemoryIncidentRepository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &MemoryIncidentRepository{
		limit:     limit,
		incidents: make([]*entity.Incident, 0, limit),
	}
}

// Add сохраняет инцидент, вытесняя самый старый при переполнении
func (r *MemoryIncidentRepository) Add(ctx context.Context, incident *entity.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.incidents) == r.limit {
		copy(r.incidents, r.incidents[1:])
		r.incidents = r.incidents[:len(r.incidents)-1]
	}
	r.incidents = append(r.incidents, incident)
	return nil
}

// Recent возвращает до limit последних инцидентов, новые первыми
func (r *MemoryIncidentRepository) Recent(ctx context.Context, limit int) ([]*entity.Incident, error) {
	if limit <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.incidents))
	out := make([]*entity.Incident, 0, n)
	for i := len(r.incidents) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.incidents[i])
	}
	return out, nil
}

// Clear удаляет все инциденты
func (r *MemoryIncidentRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.incidents = r.incidents[:0]
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.IncidentRepository = (*MemoryIncidentRepository)(nil)
