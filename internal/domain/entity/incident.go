package entity

import (
	"time"

	"github.com/google/uuid"
)

// Incident зафиксированное проникновение в запретную зону
type Incident struct {
	ID          string
	At          time.Time
	InsideCount int
	Summary     Summary
}

// NewIncident создаёт инцидент из отчёта по кадру
func NewIncident(report FrameReport) *Incident {
	return &Incident{
		ID:          uuid.NewString(),
		At:          report.At,
		InsideCount: report.InsideCount,
		Summary:     report.Summary,
	}
}
