package telegram

import (
	"context"

	"github.com/rs/zerolog/log"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// LogNotifier пишет инциденты в лог, когда токен бота не задан
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, incident *entity.Incident, snapshot []byte) error {
	log.Warn().
		Str("incident", incident.ID).
		Time("at", incident.At).
		Int("inside", incident.InsideCount).
		Int("snapshot_bytes", len(snapshot)).
		Msg("alert")
	return nil
}

var _ port.AlertNotifier = LogNotifier{}
