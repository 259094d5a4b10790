package report

import (
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/hierarchy"
)

// FlatGoal is a goal annotated with its full ancestor chain and the
// derived progress percentages, the shape reports and exports consume.
type FlatGoal struct {
	Goal domain.Goal `json:"goal"`

	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name"`

	LineID         string `json:"line_id"`
	LineName       string `json:"line_name"`
	ComponentName  string `json:"component_name"`
	BetName        string `json:"bet_name"`
	InitiativeName string `json:"initiative_name"`

	Percent          int `json:"percent"`
	FinancialPercent int `json:"financial_percent"`
	EntryCount       int `json:"entry_count"`
}

// State returns the goal's progress-state bucket.
func (f FlatGoal) State() domain.ProgressState {
	return StateOf(f.Percent)
}

// Flatten walks the plan tree depth-first and collects every goal with
// its ancestor context and freshly computed progress. The tree and the
// input maps are not mutated. A nil plan yields an empty list.
func Flatten(
	plan *domain.Plan,
	roots []*hierarchy.TreeNode,
	goalsByNode map[string][]*domain.Goal,
	entriesByGoal map[string][]*domain.ProgressEntry,
) []FlatGoal {
	if plan == nil {
		return nil
	}

	var out []FlatGoal
	hierarchy.Walk(roots, func(n *hierarchy.TreeNode, ancestors []*hierarchy.TreeNode) {
		goals := goalsByNode[n.Node.ID]
		if len(goals) == 0 {
			return
		}

		fg := FlatGoal{PlanID: plan.ID, PlanName: plan.Name}
		for _, a := range append(ancestors, n) {
			switch a.Node.Level {
			case domain.LevelLine:
				fg.LineID = a.Node.ID
				fg.LineName = a.Node.Name
			case domain.LevelComponent:
				fg.ComponentName = a.Node.Name
			case domain.LevelBet:
				fg.BetName = a.Node.Name
			case domain.LevelInitiative:
				fg.InitiativeName = a.Node.Name
			}
		}

		for _, g := range goals {
			entries := entriesByGoal[g.ID]
			item := fg
			item.Goal = *g
			item.Percent, item.FinancialPercent = ComputeProgress(g, entries)
			item.EntryCount = len(entries)
			out = append(out, item)
		}
	})
	return out
}
