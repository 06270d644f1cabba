package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// DefaultAlertCooldown минимальный интервал между инцидентами
const DefaultAlertCooldown = 30 * time.Second

const alertQueueSize = 8

type alertJob struct {
	incident *entity.Incident
	snapshot []byte
}

// AlertService фиксирует проникновения в зону и рассылает оповещения.
// Observe вызывается из цикла кадров и не блокируется на сети: отправка идёт в Run.
type AlertService struct {
	incidents port.IncidentRepository
	cooldown  time.Duration
	queue     chan alertJob

	mu        sync.RWMutex
	latest    entity.FrameReport
	lastAlert time.Time
}

// NewAlertService создаёт сервис оповещений
func NewAlertService(incidents port.IncidentRepository, cooldown time.Duration) *AlertService {
	return &AlertService{
		incidents: incidents,
		cooldown:  cooldown,
		queue:     make(chan alertJob, alertQueueSize),
	}
}

// Observe принимает итог кадра. snapshot вызывается только если инцидент зафиксирован.
func (s *AlertService) Observe(ctx context.Context, report entity.FrameReport, snapshot func() ([]byte, error)) {
	s.mu.Lock()
	s.latest = report
	fire := report.Intrusion() && (s.lastAlert.IsZero() || report.At.Sub(s.lastAlert) >= s.cooldown)
	if fire {
		s.lastAlert = report.At
	}
	s.mu.Unlock()

	if !fire {
		return
	}

	incident := entity.NewIncident(report)
	if err := s.incidents.Add(ctx, incident); err != nil {
		log.Error().Err(err).Msg("save incident")
		return
	}
	log.Warn().
		Str("incident", incident.ID).
		Int("inside", incident.InsideCount).
		Int("violations", incident.Summary.Violations).
		Msg("red zone intrusion")

	var shot []byte
	if snapshot != nil {
		var err error
		if shot, err = snapshot(); err != nil {
			log.Warn().Err(err).Msg("encode snapshot")
		}
	}

	select {
	case s.queue <- alertJob{incident: incident, snapshot: shot}:
	default:
		log.Warn().Str("incident", incident.ID).Msg("alert queue full, notification dropped")
	}
}

// Run отправляет оповещения через notifier до отмены ctx.
// При nil notifier очередь просто вычерпывается.
func (s *AlertService) Run(ctx context.Context, notifier port.AlertNotifier) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-s.queue:
			if notifier == nil {
				continue
			}
			if err := notifier.Notify(ctx, job.incident, job.snapshot); err != nil {
				log.Error().Err(err).Str("incident", job.incident.ID).Msg("notify")
			}
		}
	}
}

// Latest последний итог кадра
func (s *AlertService) Latest() entity.FrameReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// History последние инциденты, новые первыми
func (s *AlertService) History(ctx context.Context, limit int) ([]*entity.Incident, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	return s.incidents.Recent(ctx, limit)
}

// Clear сбрасывает историю инцидентов и таймер повторного оповещения
func (s *AlertService) Clear(ctx context.Context) error {
	if err := s.incidents.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastAlert = time.Time{}
	s.mu.Unlock()
	return nil
}
