package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Progress reports over the active plan",
	}

	cmd.AddCommand(
		newReportGoalsCmd(app),
		newReportLinesCmd(app),
	)

	return cmd
}

// parseState accepts the stored state values and their Spanish labels.
func parseState(s string) (domain.ProgressState, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "":
		return "", nil
	case "cumplida", "completed":
		return domain.StateCompleted, nil
	case "en_ejecucion", "en_ejecución", "in_progress":
		return domain.StateInProgress, nil
	case "sin_iniciar", "not_started":
		return domain.StateNotStarted, nil
	default:
		return "", fmt.Errorf("unknown state %q (use cumplida, en-ejecucion or sin-iniciar)", s)
	}
}

func newReportGoalsCmd(app *App) *cobra.Command {
	var (
		text, responsible, municipality, state string
		asJSON                                 bool
	)

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Flattened goal report with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseState(state)
			if err != nil {
				return err
			}
			p := report.Predicate{
				Text:         text,
				Responsible:  responsible,
				Municipality: municipality,
				State:        st,
			}

			rep, err := app.Reports.Goals(context.Background(), p, app.Scope)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(rep.Goals, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			if rep.Plan == nil {
				fmt.Println("No active plan.")
				return nil
			}
			fmt.Println(formatter.Header(fmt.Sprintf("%s — metas", rep.Plan.Name)))
			if len(rep.Goals) == 0 {
				fmt.Println("No goals match.")
				return nil
			}
			fmt.Print(formatter.FormatGoalTable(rep.Goals))
			if rep.OrphanCount > 0 {
				fmt.Println(formatter.Dim(fmt.Sprintf("%d nodes had missing parents", rep.OrphanCount)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Substring over name, description and manual code")
	cmd.Flags().StringVar(&responsible, "responsable", "", "Only goals of this responsible party")
	cmd.Flags().StringVar(&municipality, "municipio", "", "Only goals covering this municipality")
	cmd.Flags().StringVar(&state, "estado", "", "Only goals in this state (cumplida, en-ejecucion, sin-iniciar)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the flattened goals as JSON")

	return cmd
}

func newReportLinesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Per-line aggregation of the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := app.Reports.Goals(context.Background(), report.Predicate{}, app.Scope)
			if err != nil {
				return err
			}
			if rep.Plan == nil {
				fmt.Println("No active plan.")
				return nil
			}
			fmt.Println(formatter.Header(fmt.Sprintf("%s — líneas estratégicas", rep.Plan.Name)))
			if len(rep.Lines) == 0 {
				fmt.Println("No goals yet.")
				return nil
			}
			fmt.Print(formatter.FormatLineSummaries(rep.Lines))
			return nil
		},
	}
}
