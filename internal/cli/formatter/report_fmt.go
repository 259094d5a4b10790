package formatter

import (
	"fmt"
	"strings"

	"github.com/camiloruiz/plandes/internal/report"
)

// FormatGoalTable renders a flattened goal list with progress bars.
func FormatGoalTable(goals []report.FlatGoal) string {
	headers := []string{"ID", "Meta", "Línea", "Responsable", "Avance", "Estado"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			Dim(shortID(g.Goal.ID)),
			g.Goal.Name,
			g.LineName,
			g.Goal.Responsible,
			RenderProgress(float64(g.Percent)/100, 12),
			StateLabel(g.State()),
		})
	}
	return RenderTable(headers, rows)
}

// FormatGoalDetail renders one goal with its ancestor chain, target and
// financial execution.
func FormatGoalDetail(g report.FlatGoal) string {
	var b strings.Builder

	chain := []string{g.LineName, g.ComponentName, g.BetName, g.InitiativeName}
	b.WriteString(Dim(strings.Join(chain, " › ")) + "\n\n")

	b.WriteString(Bold(g.Goal.Name) + "\n")
	if g.Goal.Description != "" {
		b.WriteString(g.Goal.Description + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Meta:         %g %s\n", g.Goal.TargetQty, g.Goal.Unit))
	b.WriteString(fmt.Sprintf("Responsable:  %s\n", g.Goal.Responsible))
	if g.Goal.ManualCode != "" {
		b.WriteString(fmt.Sprintf("Código:       %s\n", g.Goal.ManualCode))
	}
	if g.Goal.Deadline != nil {
		b.WriteString(fmt.Sprintf("Plazo:        %s\n", g.Goal.Deadline.Format("2006-01-02")))
	}
	if len(g.Goal.Municipalities) > 0 {
		b.WriteString(fmt.Sprintf("Municipios:   %s\n", strings.Join(g.Goal.Municipalities, ", ")))
	}
	if total := g.Goal.BudgetTotal(); total > 0 {
		b.WriteString(fmt.Sprintf("Presupuesto:  $%.0f\n", total))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Avance físico     %s\n", RenderProgress(float64(g.Percent)/100, 20)))
	b.WriteString(fmt.Sprintf("Avance financiero %s\n", RenderProgress(float64(g.FinancialPercent)/100, 20)))
	b.WriteString(Dim(fmt.Sprintf("%d reportes de avance", g.EntryCount)))

	return b.String()
}

// FormatLineSummaries renders the per-line aggregation table.
func FormatLineSummaries(lines []report.LineSummary) string {
	headers := []string{"Línea", "Metas", "Cumplidas", "En riesgo", "Avance", "Financiero"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		atRisk := fmt.Sprintf("%d", l.AtRisk)
		if l.AtRisk > 0 {
			atRisk = StyleRed.Render(atRisk)
		}
		rows = append(rows, []string{
			l.LineName,
			fmt.Sprintf("%d", l.Total),
			fmt.Sprintf("%d", l.Completed),
			atRisk,
			RenderProgress(float64(l.AveragePercent)/100, 12),
			fmt.Sprintf("%d%%", l.FinancialAvg),
		})
	}
	return RenderTable(headers, rows)
}
