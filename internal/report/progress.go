// Package report computes the flattened, derived views of the active
// plan: per-goal progress, per-line aggregates, and filtered goal
// lists. Everything here is a pure function over in-memory values;
// nothing is cached, so edits to progress entries are reflected on the
// next call without an invalidation step.
package report

import (
	"math"

	"github.com/camiloruiz/plandes/internal/domain"
)

// AtRiskThreshold is the physical progress percent below which a goal
// counts as at risk.
const AtRiskThreshold = 30

// ComputeProgress derives a goal's physical and financial progress from
// its current progress entries. Both values are rounded to the nearest
// integer and clamped to [0,100]. A goal with no target quantity (or no
// budget) yields 0 for the corresponding percent.
func ComputeProgress(g *domain.Goal, entries []*domain.ProgressEntry) (percent, financialPercent int) {
	var qty, spent float64
	for _, e := range entries {
		qty += e.Quantity
		spent += e.Expenditure
	}
	return ratioPercent(qty, g.TargetQty), ratioPercent(spent, g.BudgetTotal())
}

// StateOf buckets a progress percent into the three reporting states.
func StateOf(percent int) domain.ProgressState {
	switch {
	case percent <= 0:
		return domain.StateNotStarted
	case percent >= 100:
		return domain.StateCompleted
	default:
		return domain.StateInProgress
	}
}

func ratioPercent(achieved, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(achieved / target * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
