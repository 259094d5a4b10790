package domain

import "time"

// BudgetYear is one year's allocation of a goal's annual budget.
type BudgetYear struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// Goal ("meta") is a quantified target owned by an initiative node.
// Progress is never stored on the goal; it is always recomputed from
// the goal's progress entries.
type Goal struct {
	ID             string
	NodeID         string // owning initiative
	ManualCode     string
	Name           string
	Description    string
	TargetQty      float64
	Unit           string
	Responsible    string
	Deadline       *time.Time
	Municipalities []string
	AnnualBudget   []BudgetYear
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BudgetTotal returns the sum of all annual budget allocations.
func (g *Goal) BudgetTotal() float64 {
	var total float64
	for _, b := range g.AnnualBudget {
		total += b.Amount
	}
	return total
}

// CoversMunicipality reports whether the goal targets the given
// municipality, either explicitly or via the whole-territory sentinel.
func (g *Goal) CoversMunicipality(name string) bool {
	for _, m := range g.Municipalities {
		if m == name || m == WholeTerritory {
			return true
		}
	}
	return false
}
