package app

import (
	"context"
	"time"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

type SubscriptionService struct {
	repo port.SubscriberRepository
	now  func() time.Time
}

func NewSubscriptionService(repo port.SubscriberRepository) *SubscriptionService {
	return &SubscriptionService{repo: repo, now: time.Now}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, chatID int64, userName string) (*entity.Subscriber, error) {
	sub := entity.NewSubscriber(chatID, userName, s.now())
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, chatID int64) error {
	return s.repo.Delete(ctx, chatID)
}

func (s *SubscriptionService) List(ctx context.Context) ([]*entity.Subscriber, error) {
	return s.repo.List(ctx)
}
