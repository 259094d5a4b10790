package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
)

func newAvanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avance",
		Short: "Record and review quarterly progress on goals",
	}

	cmd.AddCommand(
		newAvanceAddCmd(app),
		newAvanceListCmd(app),
		newAvanceRemoveCmd(app),
	)

	return cmd
}

func newAvanceAddCmd(app *App) *cobra.Command {
	var (
		goal           string
		year           int
		quarter        string
		qty, spent     float64
		evidence       string
		municipalities []string
		pop            domain.PopulationBreakdown
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a quarterly progress entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, goal)
			if err != nil {
				return err
			}

			e := &domain.ProgressEntry{
				GoalID:         goalID,
				Year:           year,
				Quarter:        domain.Quarter(strings.ToUpper(quarter)),
				Quantity:       qty,
				Expenditure:    spent,
				Municipalities: municipalities,
				Population:     pop,
			}
			if evidence != "" {
				e.EvidenceURL = &evidence
			}

			note, err := app.Progress.Record(ctx, e)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal (manual code or id)")
	cmd.Flags().IntVar(&year, "year", 0, "Reporting year")
	cmd.Flags().StringVar(&quarter, "quarter", "", "Reporting quarter (T1-T4)")
	cmd.Flags().Float64Var(&qty, "qty", 0, "Quantity achieved this period")
	cmd.Flags().Float64Var(&spent, "spent", 0, "Expenditure this period")
	cmd.Flags().StringVar(&evidence, "evidence", "", "Evidence URL")
	cmd.Flags().StringArrayVar(&municipalities, "municipio", nil, "Beneficiary municipality (repeatable)")
	cmd.Flags().IntVar(&pop.Women, "women", 0, "Women benefited")
	cmd.Flags().IntVar(&pop.Men, "men", 0, "Men benefited")
	cmd.Flags().IntVar(&pop.Children, "children", 0, "Children benefited")
	cmd.Flags().IntVar(&pop.Seniors, "seniors", 0, "Seniors benefited")
	cmd.Flags().IntVar(&pop.Victims, "victims", 0, "Conflict victims benefited")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("quarter")

	return cmd
}

func newAvanceListCmd(app *App) *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a goal's progress entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, goal)
			if err != nil {
				return err
			}
			entries, err := app.Progress.ListByGoal(ctx, goalID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No progress entries yet.")
				return nil
			}

			headers := []string{"ID", "Periodo", "Cantidad", "Ejecutado", "Evidencia"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				evidence := formatter.Dim("—")
				if e.EvidenceURL != nil {
					evidence = *e.EvidenceURL
				}
				rows = append(rows, []string{
					formatter.Dim(shortID(e.ID)),
					fmt.Sprintf("%d %s", e.Year, e.Quarter),
					fmt.Sprintf("%g", e.Quantity),
					fmt.Sprintf("$%.0f", e.Expenditure),
					evidence,
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Goal (manual code or id)")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newAvanceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Delete a progress entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entry, err := app.Progress.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			note, err := app.Progress.Delete(ctx, entry.ID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}
}
