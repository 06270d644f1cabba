package port

import (
	"context"

	"zone-guard/internal/domain/entity"
)

// AlertNotifier интерфейс доставки оповещений о проникновении
type AlertNotifier interface {
	// Notify отправляет инцидент; snapshot может быть пустым
	Notify(ctx context.Context, incident *entity.Incident, snapshot []byte) error
}
