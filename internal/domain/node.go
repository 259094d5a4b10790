package domain

import "time"

// PlanNode is one row of the flat hierarchy arena: a strategic line,
// component, bet ("apuesta") or initiative. The nested tree view is
// materialized on demand from these rows; see the hierarchy package.
type PlanNode struct {
	ID        string
	PlanID    string
	ParentID  *string
	Level     NodeLevel
	Code      string // dotted position code, e.g. "1.2.10"
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
