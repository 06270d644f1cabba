package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/geometry"
	"zone-guard/internal/domain/port"
)

// MonitorConfig пороги и элементы управления цикла
type MonitorConfig struct {
	ConfidenceThreshold float64 // детекция принимается при уверенности строго больше порога
	ZoneThreshold       float64 // доля рамки внутри зоны
	QuitKey             int
	Button              entity.Button
}

// DefaultMonitorConfig значения по умолчанию
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		ConfidenceThreshold: 0.5,
		ZoneThreshold:       geometry.DefaultThreshold,
		QuitKey:             'q',
		Button:              entity.DefaultButton,
	}
}

// Monitor покадровый цикл: захват, заморозка, детекция, подсчёт и отрисовка.
// Все состояние принадлежит одной горутине, события окна разбираются между кадрами.
type Monitor struct {
	source    port.FrameSource
	detector  port.ObjectDetector
	display   port.Display
	snapshots port.SnapshotEncoder
	alerts    *AlertService
	cfg       MonitorConfig

	editor *ZoneEditor
	engine geometry.Engine
	frame  port.Frame
	seq    uint64
	last   entity.FrameReport
	now    func() time.Time
}

// NewMonitor собирает цикл. snapshots и alerts могут быть nil.
func NewMonitor(
	source port.FrameSource,
	detector port.ObjectDetector,
	display port.Display,
	snapshots port.SnapshotEncoder,
	alerts *AlertService,
	cfg MonitorConfig,
) *Monitor {
	return &Monitor{
		source:    source,
		detector:  detector,
		display:   display,
		snapshots: snapshots,
		alerts:    alerts,
		cfg:       cfg,
		editor:    NewZoneEditor(),
		now:       time.Now,
	}
}

// Run крутит цикл до клавиши выхода, конца видео или отмены ctx.
// Устройство захвата освобождается при любом выходе.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.release()

	for {
		if err := ctx.Err(); err != nil {
			log.Info().Msg("monitor cancelled")
			return nil
		}
		done, err := m.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step выполняет одну итерацию. done == true означает штатное завершение.
func (m *Monitor) Step(ctx context.Context) (done bool, err error) {
	if !m.editor.Frozen() || m.frame == nil {
		frame, err := m.source.Read(ctx)
		if errors.Is(err, port.ErrCaptureExhausted) {
			log.Info().Msg("capture exhausted, stopping")
			return true, nil
		}
		if err != nil {
			return true, fmt.Errorf("read frame: %w", err)
		}
		m.replaceFrame(frame)
	}

	m.seq++
	scene, report := m.compose(ctx)
	if err := m.display.Show(m.frame, scene); err != nil {
		return true, fmt.Errorf("show frame: %w", err)
	}

	m.last = report
	if m.alerts != nil {
		m.alerts.Observe(ctx, report, m.snapshotFunc(m.frame, scene))
	}

	for _, ev := range m.display.PollEvents() {
		if ev.Kind == entity.EventKey {
			if ev.Key == m.cfg.QuitKey {
				log.Info().Msg("quit key pressed")
				return true, nil
			}
			continue
		}
		m.editor.Apply(ev, m.cfg.Button)
	}
	return false, nil
}

// Editor редактор зоны, которым владеет цикл
func (m *Monitor) Editor() *ZoneEditor {
	return m.editor
}

// LastReport итог последней итерации
func (m *Monitor) LastReport() entity.FrameReport {
	return m.last
}

func (m *Monitor) compose(ctx context.Context) (*entity.Scene, entity.FrameReport) {
	state := m.editor.State()
	scene := &entity.Scene{
		Mode:        state,
		Button:      m.cfg.Button,
		ButtonLabel: "Freeze",
	}
	if m.editor.Frozen() {
		scene.ButtonLabel = "Unfreeze"
	}
	report := entity.FrameReport{Seq: m.seq, At: m.now(), State: state}

	var accepted []entity.Detection
	switch state {
	case entity.ZoneEditing:
		vertices := m.editor.Vertices()
		scene.Vertices = vertices
		scene.ClosedOutline = len(vertices) == entity.MaxVertices
		if len(vertices) < entity.MaxVertices {
			scene.Caption = fmt.Sprintf("Define Red Zone (%d/%d vertices, click to add)", len(vertices), entity.MaxVertices)
		} else {
			scene.Caption = "Red Zone Defined. Press 'Unfreeze'"
		}

	case entity.ZoneDefined:
		zone, _ := m.editor.Zone()
		scene.Zone = &zone
		m.engine.Prepare(m.frame.Bounds(), zone.Polygon())

		var ok bool
		accepted, ok = m.detect(ctx)
		report.Skipped = !ok
		for _, d := range accepted {
			overlay := entity.BoxOverlay{Box: d.Box, Caption: d.Caption(), Highlight: entity.HighlightNeutral}
			if m.engine.Contains(d.Box, m.cfg.ZoneThreshold) {
				report.InsideCount++
				overlay.Highlight = entity.HighlightInside
			}
			scene.Boxes = append(scene.Boxes, overlay)
		}
		scene.Caption = fmt.Sprintf("Objects in Red Zone: %d", report.InsideCount)

	default:
		var ok bool
		accepted, ok = m.detect(ctx)
		report.Skipped = !ok
		for _, d := range accepted {
			scene.Boxes = append(scene.Boxes, entity.BoxOverlay{Box: d.Box, Caption: d.Caption(), Highlight: entity.HighlightNeutral})
		}
	}

	report.Accepted = len(accepted)
	report.Summary = entity.Summarize(accepted)
	return scene, report
}

// detect запускает детектор на исходном кадре и оставляет только уверенные
// детекции известных классов. При ошибке детектора кадр пропускается без детекций.
func (m *Monitor) detect(ctx context.Context) ([]entity.Detection, bool) {
	detections, err := m.detector.Detect(ctx, m.frame)
	if err != nil {
		log.Warn().Err(err).Uint64("frame", m.seq).Msg("detector failed, skipping detections for frame")
		return nil, false
	}

	accepted := make([]entity.Detection, 0, len(detections))
	for _, d := range detections {
		if err := d.Validate(); err != nil {
			log.Debug().Err(err).Msg("dropping detection")
			continue
		}
		if d.Confidence <= m.cfg.ConfidenceThreshold || !entity.IsRecognized(d.Label) {
			continue
		}
		accepted = append(accepted, d)
	}
	return accepted, true
}

func (m *Monitor) snapshotFunc(frame port.Frame, scene *entity.Scene) func() ([]byte, error) {
	return func() ([]byte, error) {
		if m.snapshots == nil {
			return nil, nil
		}
		return m.snapshots.Snapshot(frame, scene)
	}
}

func (m *Monitor) replaceFrame(frame port.Frame) {
	if m.frame != nil {
		if err := m.frame.Close(); err != nil {
			log.Warn().Err(err).Msg("release frame")
		}
	}
	m.frame = frame
}

func (m *Monitor) release() {
	if m.frame != nil {
		_ = m.frame.Close()
		m.frame = nil
	}
	if err := m.source.Close(); err != nil {
		log.Warn().Err(err).Msg("release capture")
	}
}
