//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"gocv.io/x/gocv"

	"zone-guard/internal/domain/entity"
	"zone-guard/internal/domain/port"
)

// коды событий мыши OpenCV
const (
	mouseLeftButtonDown = 1
	mouseLeftButtonUp   = 4
)

// доля цвета зоны при заливке
const zoneAlpha = 0.3

var (
	zoneColor    = color.RGBA{R: 255, A: 255}
	neutralColor = color.RGBA{G: 255, A: 255}
	buttonColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	buttonText   = color.RGBA{A: 255}
)

// Window окно HighGUI. События мыши приходят внутри WaitKey на той же горутине,
// что и цикл кадров, и копятся в очереди до PollEvents.
type Window struct {
	window  *gocv.Window
	canvas  gocv.Mat
	overlay gocv.Mat
	events  []entity.Event
}

// NewWindow открывает окно с обработчиком мыши
func NewWindow(title string) (*Window, error) {
	w := &Window{
		window:  gocv.NewWindow(title),
		canvas:  gocv.NewMat(),
		overlay: gocv.NewMat(),
	}
	w.window.SetMouseHandler(w.onMouse, nil)
	return w, nil
}

func (w *Window) onMouse(event int, x int, y int, flags int, userdata interface{}) {
	switch event {
	case mouseLeftButtonDown:
		w.events = append(w.events, entity.PointerDown(x, y))
	case mouseLeftButtonUp:
		w.events = append(w.events, entity.PointerUp(x, y))
	}
}

// Show рисует сцену на копии кадра и выводит её
func (w *Window) Show(frame port.Frame, scene *entity.Scene) error {
	f, ok := frame.(*Frame)
	if !ok {
		return fmt.Errorf("unsupported frame type %T", frame)
	}
	f.Mat.CopyTo(&w.canvas)
	drawScene(&w.canvas, &w.overlay, scene)
	w.window.IMShow(w.canvas)
	return nil
}

// PollEvents прокачивает очередь окна и отдаёт накопленные события
func (w *Window) PollEvents() []entity.Event {
	key := w.window.WaitKey(1)
	events := w.events
	w.events = nil
	if key >= 0 {
		events = append(events, entity.KeyPress(key&0xFF))
	}
	return events
}

// Snapshot рисует сцену на отдельной копии кадра и кодирует её в JPEG
func (w *Window) Snapshot(frame port.Frame, scene *entity.Scene) ([]byte, error) {
	f, ok := frame.(*Frame)
	if !ok {
		return nil, fmt.Errorf("unsupported frame type %T", frame)
	}
	canvas := f.Mat.Clone()
	defer canvas.Close()
	overlay := gocv.NewMat()
	defer overlay.Close()
	drawScene(&canvas, &overlay, scene)

	img, err := canvas.ToImage()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close закрывает окно
func (w *Window) Close() error {
	w.canvas.Close()
	w.overlay.Close()
	return w.window.Close()
}

func drawScene(img *gocv.Mat, overlay *gocv.Mat, scene *entity.Scene) {
	switch scene.Mode {
	case entity.ZoneEditing:
		if len(scene.Vertices) > 0 {
			pts := toPoints(scene.Vertices)
			drawPolyline(img, pts, scene.ClosedOutline)
			for _, p := range pts {
				gocv.Circle(img, p, 5, zoneColor, -1)
			}
		}

	case entity.ZoneDefined:
		if scene.Zone != nil {
			pv := gocv.NewPointsVectorFromPoints([][]image.Point{scene.Zone.Polygon()})
			img.CopyTo(overlay)
			gocv.FillPoly(overlay, pv, zoneColor)
			gocv.AddWeighted(*overlay, zoneAlpha, *img, 1-zoneAlpha, 0, img)
			pv.Close()
		}
	}

	for _, b := range scene.Boxes {
		c := neutralColor
		if b.Highlight == entity.HighlightInside {
			c = zoneColor
		}
		gocv.Rectangle(img, b.Box.Rect(), c, 2)
		gocv.PutText(img, b.Caption, image.Pt(b.Box.X1, b.Box.Y1-10), gocv.FontHersheySimplex, 0.5, neutralColor, 2)
	}

	if scene.Mode == entity.ZoneDefined && scene.Zone != nil {
		drawPolyline(img, scene.Zone.Polygon(), true)
	}
	if scene.Caption != "" {
		gocv.PutText(img, scene.Caption, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, zoneColor, 2)
	}
	drawButton(img, scene.Button, scene.ButtonLabel)
}

func drawPolyline(img *gocv.Mat, pts []image.Point, closed bool) {
	pv := gocv.NewPointsVectorFromPoints([][]image.Point{pts})
	defer pv.Close()
	gocv.Polylines(img, pv, closed, zoneColor, 2)
}

func drawButton(img *gocv.Mat, b entity.Button, label string) {
	rect := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
	gocv.Rectangle(img, rect, buttonColor, -1)
	gocv.PutText(img, label, image.Pt(b.X+10, b.Y+20), gocv.FontHersheySimplex, 0.5, buttonText, 2)
}

func toPoints(vs []entity.Vertex) []image.Point {
	pts := make([]image.Point, len(vs))
	for i, v := range vs {
		pts[i] = v.Point()
	}
	return pts
}

var (
	_ port.Display         = (*Window)(nil)
	_ port.SnapshotEncoder = (*Window)(nil)
)
