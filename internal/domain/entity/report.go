package entity

import (
	"time"

	"github.com/samber/lo"
)

// Summary сводка детекций кадра по классам
type Summary struct {
	ByLabel    map[string]int
	Violations int
}

// Summarize считает детекции по классам и нарушения
func Summarize(detections []Detection) Summary {
	labels := lo.Map(detections, func(d Detection, _ int) string { return d.Label })
	return Summary{
		ByLabel:    lo.CountValues(labels),
		Violations: lo.CountBy(labels, IsViolation),
	}
}

// FrameReport итог одной итерации цикла
type FrameReport struct {
	Seq         uint64
	At          time.Time
	State       ZoneState
	InsideCount int
	Accepted    int // детекции, прошедшие порог уверенности и фильтр классов
	Summary     Summary
	Skipped     bool // детектор упал, кадр обработан без детекций
}

// Intrusion true, когда в зафиксированной зоне есть объекты
func (r FrameReport) Intrusion() bool {
	return r.State == ZoneDefined && r.InsideCount > 0
}
