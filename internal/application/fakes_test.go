package app

import (
	"context"
	"image"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

type fakeFrame struct {
	id     int
	bounds image.Rectangle
	closed bool
}

func (f *fakeFrame) Bounds() image.Rectangle { return f.bounds }

func (f *fakeFrame) Close() error {
	f.closed = true
	return nil
}

type fakeSource struct {
	limit  int
	frames []*fakeFrame
	closed bool
}

func (s *fakeSource) Read(ctx context.Context) (port.Frame, error) {
	if len(s.frames) >= s.limit {
		return nil, port.ErrCaptureExhausted
	}
	f := &fakeFrame{id: len(s.frames), bounds: image.Rect(0, 0, 640, 480)}
	s.frames = append(s.frames, f)
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeDetector struct {
	detections []entity.Detection
	err        error
	seen       []port.Frame
}

func (d *fakeDetector) Detect(ctx context.Context, frame port.Frame) ([]entity.Detection, error) {
	d.seen = append(d.seen, frame)
	if d.err != nil {
		return nil, d.err
	}
	return d.detections, nil
}

type fakeDisplay struct {
	shown   []port.Frame
	scenes  []*entity.Scene
	pending [][]entity.Event
}

func (d *fakeDisplay) Show(frame port.Frame, scene *entity.Scene) error {
	d.shown = append(d.shown, frame)
	d.scenes = append(d.scenes, scene)
	return nil
}

// queue события, которые окно отдаст после очередного кадра
func (d *fakeDisplay) queue(events ...entity.Event) {
	d.pending = append(d.pending, events)
}

func (d *fakeDisplay) PollEvents() []entity.Event {
	if len(d.pending) == 0 {
		return nil
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev
}

func (d *fakeDisplay) Close() error { return nil }

func (d *fakeDisplay) lastScene() *entity.Scene {
	return d.scenes[len(d.scenes)-1]
}

type fakeSnapshots struct {
	calls int
}

func (s *fakeSnapshots) Snapshot(frame port.Frame, scene *entity.Scene) ([]byte, error) {
	s.calls++
	return []byte("jpeg"), nil
}

type fakeNotifier struct {
	sent chan *entity.Incident
}

func (n *fakeNotifier) Notify(ctx context.Context, incident *entity.Incident, snapshot []byte) error {
	n.sent <- incident
	return nil
}
