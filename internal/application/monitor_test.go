package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/infrastructure/storage"
)

var freezeClick = entity.PointerDown(550, 25)

func zoneClicks() []entity.Event {
	return []entity.Event{
		entity.PointerDown(100, 100), entity.PointerUp(100, 100),
		entity.PointerDown(300, 100), entity.PointerUp(300, 100),
		entity.PointerDown(300, 300), entity.PointerUp(300, 300),
		entity.PointerDown(100, 300), entity.PointerUp(100, 300),
	}
}

var (
	personInside   = entity.Detection{Box: entity.BBox{X1: 120, Y1: 120, X2: 200, Y2: 200}, Label: "Person", Confidence: 0.9}
	vehicleOutside = entity.Detection{Box: entity.BBox{X1: 400, Y1: 300, X2: 500, Y2: 400}, Label: "vehicle", Confidence: 0.8}
)

func newTestMonitor(frames int, det *fakeDetector) (*Monitor, *fakeSource, *fakeDisplay) {
	src := &fakeSource{limit: frames}
	disp := &fakeDisplay{}
	return NewMonitor(src, det, disp, nil, nil, DefaultMonitorConfig()), src, disp
}

func step(t *testing.T, m *Monitor) {
	t.Helper()
	done, err := m.Step(context.Background())
	require.NoError(t, err)
	require.False(t, done)
}

func TestMonitor_UndefinedFiltersDetections(t *testing.T) {
	det := &fakeDetector{detections: []entity.Detection{
		{Box: entity.BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, Label: "Person", Confidence: 0.5},
		{Box: entity.BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, Label: "Person", Confidence: 0.51},
		{Box: entity.BBox{X1: 0, Y1: 0, X2: 10, Y2: 10}, Label: "dog", Confidence: 0.99},
		{Box: entity.BBox{X1: 10, Y1: 0, X2: 0, Y2: 10}, Label: "Hardhat", Confidence: 0.99},
		{Box: entity.BBox{X1: 5, Y1: 5, X2: 50, Y2: 50}, Label: "NO-Mask", Confidence: 0.7},
	}}
	m, _, disp := newTestMonitor(5, det)

	step(t, m)

	scene := disp.lastScene()
	require.Equal(t, entity.ZoneUndefined, scene.Mode)
	require.Equal(t, "Freeze", scene.ButtonLabel)
	require.Nil(t, scene.Zone)
	require.Empty(t, scene.Caption)
	require.Len(t, scene.Boxes, 2)
	require.Equal(t, "Person 0.51", scene.Boxes[0].Caption)
	require.Equal(t, "NO-Mask 0.70", scene.Boxes[1].Caption)
	for _, b := range scene.Boxes {
		require.Equal(t, entity.HighlightNeutral, b.Highlight)
	}

	report := m.LastReport()
	require.Equal(t, 2, report.Accepted)
	require.Zero(t, report.InsideCount)
	require.Equal(t, 1, report.Summary.Violations)
}

func TestMonitor_FullZoneFlow(t *testing.T) {
	det := &fakeDetector{detections: []entity.Detection{personInside, vehicleOutside}}
	m, src, disp := newTestMonitor(10, det)

	disp.queue(freezeClick)
	step(t, m)
	require.Len(t, src.frames, 1)
	require.Len(t, det.seen, 1)

	// кадр заморожен: новый кадр не читается, детектор не вызывается
	disp.queue(zoneClicks()[:4]...)
	step(t, m)
	require.Len(t, src.frames, 1)
	require.Len(t, det.seen, 1)
	scene := disp.lastScene()
	require.Equal(t, entity.ZoneEditing, scene.Mode)
	require.Equal(t, "Unfreeze", scene.ButtonLabel)
	require.Equal(t, "Define Red Zone (0/4 vertices, click to add)", scene.Caption)
	require.Same(t, src.frames[0], disp.shown[1])

	disp.queue(zoneClicks()[4:]...)
	step(t, m)
	scene = disp.lastScene()
	require.Equal(t, "Define Red Zone (2/4 vertices, click to add)", scene.Caption)
	require.Len(t, scene.Vertices, 2)
	require.False(t, scene.ClosedOutline)

	disp.queue(freezeClick)
	step(t, m)
	scene = disp.lastScene()
	require.Equal(t, "Red Zone Defined. Press 'Unfreeze'", scene.Caption)
	require.True(t, scene.ClosedOutline)
	require.Len(t, src.frames, 1)
	require.Equal(t, entity.ZoneDefined, m.Editor().State())

	step(t, m)
	require.Len(t, src.frames, 2)
	require.True(t, src.frames[0].closed)
	scene = disp.lastScene()
	require.Equal(t, entity.ZoneDefined, scene.Mode)
	require.Equal(t, "Freeze", scene.ButtonLabel)
	require.NotNil(t, scene.Zone)
	require.Equal(t, entity.Zone{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}}, *scene.Zone)
	require.Len(t, scene.Boxes, 2)
	require.Equal(t, entity.HighlightInside, scene.Boxes[0].Highlight)
	require.Equal(t, entity.HighlightNeutral, scene.Boxes[1].Highlight)
	require.Equal(t, "Objects in Red Zone: 1", scene.Caption)

	// детектор получает исходный кадр
	require.Same(t, src.frames[1], det.seen[len(det.seen)-1])

	report := m.LastReport()
	require.Equal(t, entity.ZoneDefined, report.State)
	require.Equal(t, 1, report.InsideCount)
	require.Equal(t, 2, report.Accepted)
}

func TestMonitor_IncompleteZoneRevertsToUndefined(t *testing.T) {
	m, _, disp := newTestMonitor(10, &fakeDetector{})

	disp.queue(freezeClick)
	step(t, m)
	disp.queue(entity.PointerDown(1, 1), entity.PointerDown(2, 2), entity.PointerDown(3, 3), freezeClick)
	step(t, m)
	step(t, m)

	require.Equal(t, entity.ZoneUndefined, disp.lastScene().Mode)
	_, ok := m.Editor().Zone()
	require.False(t, ok)
}

func TestMonitor_CaptureExhaustedStopsCleanly(t *testing.T) {
	m, src, disp := newTestMonitor(3, &fakeDetector{})

	require.NoError(t, m.Run(context.Background()))
	require.Len(t, disp.scenes, 3)
	require.True(t, src.closed)
	for _, f := range src.frames {
		require.True(t, f.closed)
	}
}

func TestMonitor_QuitKeyStops(t *testing.T) {
	m, src, disp := newTestMonitor(100, &fakeDetector{})
	disp.queue(entity.KeyPress('x'))
	disp.queue(entity.KeyPress('q'))

	require.NoError(t, m.Run(context.Background()))
	require.Len(t, disp.scenes, 2)
	require.True(t, src.closed)
}

func TestMonitor_CancelledContextStops(t *testing.T) {
	m, src, disp := newTestMonitor(100, &fakeDetector{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.Run(ctx))
	require.Empty(t, disp.scenes)
	require.True(t, src.closed)
}

func TestMonitor_DetectorFailureSkipsFrameInEveryMode(t *testing.T) {
	det := &fakeDetector{err: errors.New("inference failed")}
	m, _, disp := newTestMonitor(10, det)

	step(t, m)
	require.True(t, m.LastReport().Skipped)
	require.Empty(t, disp.lastScene().Boxes)

	disp.queue(freezeClick)
	step(t, m)
	disp.queue(append(zoneClicks(), freezeClick)...)
	step(t, m)
	step(t, m)

	scene := disp.lastScene()
	require.Equal(t, entity.ZoneDefined, scene.Mode)
	require.NotNil(t, scene.Zone)
	require.Empty(t, scene.Boxes)
	require.Equal(t, "Objects in Red Zone: 0", scene.Caption)
	require.True(t, m.LastReport().Skipped)
}

func TestMonitor_ReportsIntrusionToAlerts(t *testing.T) {
	det := &fakeDetector{detections: []entity.Detection{personInside}}
	src := &fakeSource{limit: 10}
	disp := &fakeDisplay{}
	snaps := &fakeSnapshots{}
	incidents := storage.NewMemoryIncidentRepository(5)
	alerts := NewAlertService(incidents, DefaultAlertCooldown)
	m := NewMonitor(src, det, disp, snaps, alerts, DefaultMonitorConfig())

	disp.queue(freezeClick)
	step(t, m)
	disp.queue(append(zoneClicks(), freezeClick)...)
	step(t, m)
	require.Zero(t, snaps.calls)

	step(t, m)
	require.Equal(t, 1, snaps.calls)
	require.Equal(t, 1, alerts.Latest().InsideCount)

	// повтор в пределах cooldown не создаёт инцидент
	step(t, m)
	require.Equal(t, 1, snaps.calls)

	history, err := alerts.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, 1, history[0].InsideCount)
}
