package entity

import "image"

// Vertex точка полигона в пиксельных координатах кадра
type Vertex struct {
	X int
	Y int
}

// Point возвращает вершину как image.Point
func (v Vertex) Point() image.Point {
	return image.Pt(v.X, v.Y)
}
