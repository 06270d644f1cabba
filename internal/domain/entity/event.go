package entity

// EventKind тип события окна
type EventKind int

const (
	EventPointerDown EventKind = iota + 1
	EventPointerUp
	EventKey
)

// Event событие указателя или клавиатуры, доставленное окном
type Event struct {
	Kind EventKind
	X    int
	Y    int
	Key  int
}

// PointerDown создаёт событие нажатия кнопки мыши
func PointerDown(x, y int) Event {
	return Event{Kind: EventPointerDown, X: x, Y: y}
}

// PointerUp создаёт событие отпускания кнопки мыши
func PointerUp(x, y int) Event {
	return Event{Kind: EventPointerUp, X: x, Y: y}
}

// KeyPress создаёт событие нажатия клавиши
func KeyPress(key int) Event {
	return Event{Kind: EventKey, Key: key}
}

// Button область кнопки Freeze/Unfreeze на экране
type Button struct {
	X      int
	Y      int
	Width  int
	Height int
}

// DefaultButton положение кнопки по умолчанию
var DefaultButton = Button{X: 500, Y: 10, Width: 100, Height: 30}

// Contains проверяет попадание клика строго внутрь кнопки
func (b Button) Contains(x, y int) bool {
	return b.X < x && x < b.X+b.Width && b.Y < y && y < b.Y+b.Height
}
