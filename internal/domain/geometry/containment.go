// Package geometry решает, попадает ли рамка детекции в запретную зону.
//
// Рамка и полигон растеризуются в маски размером с кадр; доля пикселей рамки,
// покрытых полигоном, сравнивается с порогом. Пиксель (x, y) принадлежит рамке,
// если X1 <= x < X2 и Y1 <= y < Y2, и принадлежит полигону, если растеризатор
// покрывает его не меньше чем наполовину. Самопересекающиеся полигоны
// заливаются по правилу растеризатора (nonzero).
package geometry

import (
	"image"
	"slices"

	"golang.org/x/image/vector"

	"zone-guard/internal/domain/entity"
)

// DefaultThreshold минимальная доля рамки внутри зоны
const DefaultThreshold = 0.20

// Пиксель маски считается залитым при покрытии от 50%.
const coverageCutoff = 0x80

// IsInside проверяет, что не меньше threshold площади box лежит внутри polygon.
// frame задаёт разрешение масок.
func IsInside(frame image.Rectangle, box entity.BBox, polygon []image.Point, threshold float64) bool {
	var e Engine
	e.Prepare(frame, polygon)
	return e.Contains(box, threshold)
}

// Engine держит маску полигона между вызовами. Маска перестраивается только
// при смене зоны или размера кадра, поэтому проверка каждой детекции стоит
// пропорционально площади её рамки.
type Engine struct {
	rast    vector.Rasterizer
	mask    *image.Alpha
	frame   image.Rectangle
	polygon []image.Point
}

// Prepare растеризует polygon в маску размера frame
func (e *Engine) Prepare(frame image.Rectangle, polygon []image.Point) {
	if e.mask != nil && frame.Eq(e.frame) && slices.Equal(polygon, e.polygon) {
		return
	}
	e.frame = frame
	e.polygon = slices.Clone(polygon)

	w, h := frame.Dx(), frame.Dy()
	if w <= 0 || h <= 0 {
		e.mask = &image.Alpha{}
		return
	}
	size := image.Rect(0, 0, w, h)
	if e.mask == nil || !e.mask.Rect.Eq(size) {
		e.mask = image.NewAlpha(size)
	} else {
		clear(e.mask.Pix)
	}

	if len(polygon) < 3 {
		return
	}
	e.rast.Reset(w, h)
	origin := frame.Min
	first := polygon[0].Sub(origin)
	e.rast.MoveTo(float32(first.X), float32(first.Y))
	for _, p := range polygon[1:] {
		p = p.Sub(origin)
		e.rast.LineTo(float32(p.X), float32(p.Y))
	}
	e.rast.ClosePath()
	e.rast.Draw(e.mask, size, image.Opaque, image.Point{})
}

// Ratio доля площади box, покрытая полигоном. Для вырожденной рамки ok == false.
func (e *Engine) Ratio(box entity.BBox) (ratio float64, ok bool) {
	area := box.Area()
	if area == 0 {
		return 0, false
	}
	if e.mask == nil || len(e.mask.Pix) == 0 {
		return 0, true
	}
	r := box.Rect().Sub(e.frame.Min).Intersect(e.mask.Rect)
	covered := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := e.mask.Pix[y*e.mask.Stride : y*e.mask.Stride+e.mask.Rect.Dx()]
		for _, a := range row[r.Min.X:r.Max.X] {
			if a >= coverageCutoff {
				covered++
			}
		}
	}
	return float64(covered) / float64(area), true
}

// Contains true, если доля рамки внутри зоны не меньше threshold.
// Рамка нулевой площади никогда не считается внутри.
func (e *Engine) Contains(box entity.BBox, threshold float64) bool {
	ratio, ok := e.Ratio(box)
	if !ok {
		return false
	}
	return ratio >= threshold
}
