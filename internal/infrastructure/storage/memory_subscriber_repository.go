package storage

import (
	"context"
	"sort"
	"sync"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// MemorySubscriberRepository in-memory хранилище подписчиков
type MemorySubscriberRepository struct {
	mu          sync.RWMutex
	subscribers map[int64]*entity.Subscriber
}

// NewMemorySubscriberRepository создаёт новое in-memory хранилище
func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		subscribers: make(map[int64]*entity.Subscriber),
	}
}

// Save добавляет или обновляет подписчика
func (r *MemorySubscriberRepository) Save(ctx context.Context, subscriber *entity.Subscriber) error {
	r.mu.Lock()
	r.subscribers[subscriber.ChatID] = subscriber
	r.mu.Unlock()

	return nil
}

// Delete удаляет подписчика
func (r *MemorySubscriberRepository) Delete(ctx context.Context, chatID int64) error {
	r.mu.Lock()
	delete(r.subscribers, chatID)
	r.mu.Unlock()

	return nil
}

// List возвращает подписчиков в порядке Chat ID
func (r *MemorySubscriberRepository) List(ctx context.Context) ([]*entity.Subscriber, error) {
	r.mu.RLock()
	out := make([]*entity.Subscriber, 0, len(r.subscribers))
	for _, s := range r.subscribers {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

// Проверка реализации интерфейса
var _ port.SubscriberRepository = (*MemorySubscriberRepository)(nil)
