package entity

import "time"

// Subscriber чат Telegram, получающий оповещения
type Subscriber struct {
	ChatID   int64     // Telegram Chat ID
	UserName string    // имя пользователя, подписавшего чат
	Since    time.Time // время подписки
}

// NewSubscriber создаёт подписчика
func NewSubscriber(chatID int64, userName string, since time.Time) *Subscriber {
	return &Subscriber{
		ChatID:   chatID,
		UserName: userName,
		Since:    since,
	}
}
