package entity

import "image"

// MaxVertices количество вершин запретной зоны
const MaxVertices = 4

// ZoneState состояние запретной зоны
type ZoneState string

const (
	ZoneUndefined ZoneState = "undefined" // Зона не задана, кадр живой
	ZoneEditing   ZoneState = "editing"   // Кадр заморожен, набираем вершины
	ZoneDefined   ZoneState = "defined"   // Зона зафиксирована, идёт подсчёт
)

// Zone зафиксированная запретная зона из ровно четырёх вершин.
// Массив копируется по значению, поэтому после фиксации зону нельзя изменить.
type Zone [MaxVertices]Vertex

// Polygon возвращает вершины зоны в порядке кликов
func (z Zone) Polygon() []image.Point {
	pts := make([]image.Point, 0, MaxVertices)
	for _, v := range z {
		pts = append(pts, v.Point())
	}
	return pts
}

// VertexBuffer временные вершины, пока зона рисуется
type VertexBuffer struct {
	vertices []Vertex
}

// Append добавляет вершину, если буфер ещё не заполнен.
// Возвращает false, когда вершина отброшена.
func (b *VertexBuffer) Append(v Vertex) bool {
	if b.Full() {
		return false
	}
	b.vertices = append(b.vertices, v)
	return true
}

// Len количество набранных вершин
func (b *VertexBuffer) Len() int {
	return len(b.vertices)
}

// Full true, если набраны все четыре вершины
func (b *VertexBuffer) Full() bool {
	return len(b.vertices) >= MaxVertices
}

// Reset очищает буфер
func (b *VertexBuffer) Reset() {
	b.vertices = b.vertices[:0]
}

// Vertices возвращает копию набранных вершин
func (b *VertexBuffer) Vertices() []Vertex {
	out := make([]Vertex, len(b.vertices))
	copy(out, b.vertices)
	return out
}

// Zone превращает полный буфер в зону
func (b *VertexBuffer) Zone() (Zone, bool) {
	var z Zone
	if len(b.vertices) != MaxVertices {
		return z, false
	}
	copy(z[:], b.vertices)
	return z, true
}
