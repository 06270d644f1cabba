package port

import (
	"context"

	"zone-guard/internal/domain/entity"
)

// SubscriberRepository интерфейс хранилища подписчиков
type SubscriberRepository interface {
	// Save добавляет или обновляет подписчика
	Save(ctx context.Context, subscriber *entity.Subscriber) error

	// Delete удаляет подписчика; отсутствие подписчика не ошибка
	Delete(ctx context.Context, chatID int64) error

	// List возвращает всех подписчиков
	List(ctx context.Context) ([]*entity.Subscriber, error)
}
