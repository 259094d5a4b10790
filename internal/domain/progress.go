package domain

import "time"

// PopulationBreakdown records who benefited from a progress entry.
type PopulationBreakdown struct {
	Women    int `json:"women"`
	Men      int `json:"men"`
	Children int `json:"children"`
	Seniors  int `json:"seniors"`
	Victims  int `json:"victims"`
}

// ProgressEntry ("avance") is one periodic report of quantity and
// expenditure achieved against a goal.
type ProgressEntry struct {
	ID             string
	GoalID         string
	Year           int
	Quarter        Quarter
	Quantity       float64
	Expenditure    float64
	EvidenceURL    *string
	Municipalities []string // beneficiary municipalities
	Population     PopulationBreakdown
	CreatedAt      time.Time
}
