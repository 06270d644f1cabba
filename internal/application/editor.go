package app

import (
	"github.com/rs/zerolog/log"

	"zone-guard/internal/domain/entity"
)

// ZoneEditor конечный автомат задания запретной зоны.
// Заморозка кадра единственный вход в редактирование и выход из него.
type ZoneEditor struct {
	frozen   bool
	dragging bool
	state    entity.ZoneState
	buffer   entity.VertexBuffer
	zone     entity.Zone
}

// NewZoneEditor создаёт редактор без зоны с живым кадром
func NewZoneEditor() *ZoneEditor {
	return &ZoneEditor{state: entity.ZoneUndefined}
}

// ToggleFreeze замораживает или размораживает кадр.
// При заморозке прежняя зона сбрасывается, при разморозке фиксируется
// только полный набор из четырёх вершин.
func (e *ZoneEditor) ToggleFreeze() {
	e.frozen = !e.frozen
	if e.frozen {
		e.state = entity.ZoneEditing
		e.zone = entity.Zone{}
		e.buffer.Reset()
		log.Info().Msg("frame frozen, define or redefine red zone")
		return
	}

	if zone, ok := e.buffer.Zone(); ok {
		e.zone = zone
		e.state = entity.ZoneDefined
		log.Info().Interface("zone", zone).Msg("red zone saved")
	} else {
		e.zone = entity.Zone{}
		e.state = entity.ZoneUndefined
		log.Info().Int("vertices", e.buffer.Len()).Msg("red zone selection reset")
	}
	e.buffer.Reset()
	e.dragging = false
}

// PointerDown добавляет вершину, пока идёт редактирование и буфер не полон
func (e *ZoneEditor) PointerDown(x, y int) {
	if e.state != entity.ZoneEditing || e.buffer.Full() {
		return
	}
	e.dragging = true
	e.buffer.Append(entity.Vertex{X: x, Y: y})
	log.Debug().Int("x", x).Int("y", y).Int("count", e.buffer.Len()).Msg("vertex added")
	if e.buffer.Full() {
		e.dragging = false
	}
}

// PointerUp завершает клик
func (e *ZoneEditor) PointerUp(_, _ int) {
	e.dragging = false
}

// Apply направляет событие указателя: клик по кнопке переключает заморозку,
// остальные клики добавляют вершины
func (e *ZoneEditor) Apply(ev entity.Event, button entity.Button) {
	switch ev.Kind {
	case entity.EventPointerDown:
		if button.Contains(ev.X, ev.Y) {
			e.ToggleFreeze()
			return
		}
		e.PointerDown(ev.X, ev.Y)
	case entity.EventPointerUp:
		e.PointerUp(ev.X, ev.Y)
	}
}

// State текущее состояние зоны
func (e *ZoneEditor) State() entity.ZoneState {
	return e.state
}

// Frozen true, пока кадр заморожен
func (e *ZoneEditor) Frozen() bool {
	return e.frozen
}

// Dragging true между нажатием и отпусканием кнопки мыши во время набора вершин
func (e *ZoneEditor) Dragging() bool {
	return e.dragging
}

// Vertices копия временных вершин
func (e *ZoneEditor) Vertices() []entity.Vertex {
	return e.buffer.Vertices()
}

// Zone зафиксированная зона; ok == false, если зона не задана
func (e *ZoneEditor) Zone() (zone entity.Zone, ok bool) {
	if e.state != entity.ZoneDefined {
		return entity.Zone{}, false
	}
	return e.zone, true
}
