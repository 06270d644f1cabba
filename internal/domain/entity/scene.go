package entity

// Highlight стиль рамки детекции
type Highlight int

const (
	HighlightNeutral Highlight = iota // объект вне зоны или зона не задана
	HighlightInside                   // объект в запретной зоне
)

// BoxOverlay рамка детекции с подписью
type BoxOverlay struct {
	Box       BBox
	Caption   string
	Highlight Highlight
}

// Scene описывает, что нарисовать поверх кадра на текущей итерации.
// Окно рисует сцену на копии кадра, исходный кадр не меняется.
type Scene struct {
	Mode          ZoneState
	Vertices      []Vertex // незавершённая ломаная в режиме редактирования
	ClosedOutline bool     // замкнуть ломаную, когда набраны все вершины
	Zone          *Zone    // зафиксированная зона: заливка и контур
	Boxes         []BoxOverlay
	Caption       string
	Button        Button
	ButtonLabel   string
}
