package report

import "math"

// LineSummary aggregates the goals of one strategic line. Lines are
// keyed by node ID; the name is a display label only, so two lines
// that happen to share a name are never merged.
type LineSummary struct {
	LineID         string `json:"line_id"`
	LineName       string `json:"line_name"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	AtRisk         int    `json:"at_risk"`
	AveragePercent int    `json:"average_percent"`
	FinancialAvg   int    `json:"financial_avg"`
}

// AggregateByLine groups flattened goals by strategic line and computes
// counts and mean progress. Lines appear in first-encounter order,
// which follows the tree's code order when the input comes straight
// from Flatten. A line with no goals never appears here; callers that
// need empty lines merge against the tree (see summaryForLine).
func AggregateByLine(goals []FlatGoal) []LineSummary {
	var order []string
	grouped := make(map[string][]FlatGoal)
	names := make(map[string]string)

	for _, g := range goals {
		if _, seen := grouped[g.LineID]; !seen {
			order = append(order, g.LineID)
			names[g.LineID] = g.LineName
		}
		grouped[g.LineID] = append(grouped[g.LineID], g)
	}

	out := make([]LineSummary, 0, len(order))
	for _, id := range order {
		out = append(out, summaryForLine(id, names[id], grouped[id]))
	}
	return out
}

// summaryForLine computes one line's summary. An empty goal list yields
// zero averages, not NaN.
func summaryForLine(id, name string, goals []FlatGoal) LineSummary {
	s := LineSummary{LineID: id, LineName: name, Total: len(goals)}
	if len(goals) == 0 {
		return s
	}

	var pctSum, finSum int
	for _, g := range goals {
		pctSum += g.Percent
		finSum += g.FinancialPercent
		if g.Percent >= 100 {
			s.Completed++
		}
		if g.Percent < AtRiskThreshold {
			s.AtRisk++
		}
	}
	s.AveragePercent = int(math.Round(float64(pctSum) / float64(len(goals))))
	s.FinancialAvg = int(math.Round(float64(finSum) / float64(len(goals))))
	return s
}
