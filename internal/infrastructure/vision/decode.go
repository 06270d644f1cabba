package vision

import (
	"image"
	"math"
)

// candidate сырая детекция до подавления немаксимумов
type candidate struct {
	box   image.Rectangle
	score float32
	class int
}

// decodeYOLOv8 разбирает выход YOLOv8 формы [1, 4+classes, anchors].
// Координаты (cx, cy, w, h) заданы во входном размере сети и переводятся
// в пиксели кадра через sx, sy; рамки обрезаются по bounds.
func decodeYOLOv8(data []float32, attrs, anchors int, sx, sy float64, bounds image.Rectangle, minScore float32) []candidate {
	if attrs <= 4 || anchors <= 0 || len(data) < attrs*anchors {
		return nil
	}
	at := func(a, i int) float32 { return data[a*anchors+i] }

	var out []candidate
	for i := 0; i < anchors; i++ {
		best, score := -1, float32(0)
		for c := 0; c < attrs-4; c++ {
			if s := at(4+c, i); s > score {
				best, score = c, s
			}
		}
		if best < 0 || score < minScore {
			continue
		}

		cx, cy := float64(at(0, i)), float64(at(1, i))
		w, h := float64(at(2, i)), float64(at(3, i))
		box := image.Rect(
			int(math.Round((cx-w/2)*sx)),
			int(math.Round((cy-h/2)*sy)),
			int(math.Round((cx+w/2)*sx)),
			int(math.Round((cy+h/2)*sy)),
		).Intersect(bounds)
		if box.Empty() {
			continue
		}
		out = append(out, candidate{box: box, score: score, class: best})
	}
	return out
}
