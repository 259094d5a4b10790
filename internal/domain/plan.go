package domain

import (
	"fmt"
	"time"
)

// Plan is a top-level development plan. At most one plan is active at a
// time; the active plan is the one all reports are computed against.
type Plan struct {
	ID            string
	Name          string
	ValidityStart int // first year covered, e.g. 2024
	ValidityEnd   int // last year covered, e.g. 2027
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateValidity checks that the validity window is a sane year range.
func (p *Plan) ValidateValidity() error {
	if p.ValidityStart < 1900 || p.ValidityStart > 2200 {
		return fmt.Errorf("validity start year %d is out of range", p.ValidityStart)
	}
	if p.ValidityEnd < p.ValidityStart {
		return fmt.Errorf("validity end year %d precedes start year %d", p.ValidityEnd, p.ValidityStart)
	}
	return nil
}

// ValidityLabel returns the plan's validity window as "2024-2027".
func (p *Plan) ValidityLabel() string {
	return fmt.Sprintf("%d-%d", p.ValidityStart, p.ValidityEnd)
}
