package container

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"zone-guard/config"
	app "zone-guard/internal/application"
	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
	"zone-guard/internal/infrastructure/storage"
	"zone-guard/internal/infrastructure/vision"
)

type Container struct {
	SubscriptionService *app.SubscriptionService
	AlertService        *app.AlertService
	Monitor             *app.Monitor

	closers []interface{ Close() error }
}

// New собирает хранилища, сервисы и адаптеры OpenCV
func New(cfg *config.Config) (*Container, error) {
	labels := vision.DefaultLabels()
	if cfg.ModelLabels != "" {
		var err error
		if labels, err = vision.LoadLabels(cfg.ModelLabels); err != nil {
			return nil, fmt.Errorf("load labels: %w", err)
		}
	}

	c := &Container{}

	capture, err := vision.OpenCapture(cfg.CameraSource)
	if err != nil {
		return nil, fmt.Errorf("open capture %q: %w", cfg.CameraSource, err)
	}
	c.closers = append(c.closers, capture)

	detector, err := vision.NewYOLODetector(cfg.ModelPath, labels, cfg.InputSize, cfg.NMSThreshold)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("load model %q: %w", cfg.ModelPath, err), c.Close())
	}
	c.closers = append(c.closers, detector)

	window, err := vision.NewWindow(cfg.WindowTitle)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("open window: %w", err), c.Close())
	}
	c.closers = append(c.closers, window)

	log.Info().
		Str("source", cfg.CameraSource).
		Str("model", cfg.ModelPath).
		Int("classes", len(labels)).
		Msg("vision ready")

	c.wire(cfg, capture, detector, window, window)
	return c, nil
}

func (c *Container) wire(
	cfg *config.Config,
	source port.FrameSource,
	detector port.ObjectDetector,
	display port.Display,
	snapshots port.SnapshotEncoder,
) {
	c.SubscriptionService = app.NewSubscriptionService(storage.NewMemorySubscriberRepository())
	c.AlertService = app.NewAlertService(storage.NewMemoryIncidentRepository(cfg.HistoryLimit), cfg.AlertCooldown)
	c.Monitor = app.NewMonitor(source, detector, display, snapshots, c.AlertService, app.MonitorConfig{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		ZoneThreshold:       cfg.ZoneThreshold,
		QuitKey:             cfg.QuitKey,
		Button:              entity.DefaultButton,
	})
}

// Close освобождает модель и окно. Камеру закрывает сам Monitor при выходе из Run,
// повторное закрытие безопасно.
func (c *Container) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.closers[i].Close())
	}
	c.closers = nil
	return err
}
