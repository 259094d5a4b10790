package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/report"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"meta"},
		Short:   "Manage goals on the active plan's initiatives",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalShowCmd(app),
		newGoalUpdateCmd(app),
		newGoalRemoveCmd(app),
	)

	return cmd
}

type goalFlags struct {
	initiative     string
	name           string
	description    string
	code           string
	target         float64
	unit           string
	responsible    string
	deadline       string
	municipalities []string
	budget         []string
}

func (f *goalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.initiative, "initiative", "", "Owning initiative (code or id)")
	cmd.Flags().StringVar(&f.name, "name", "", "Goal name")
	cmd.Flags().StringVar(&f.description, "description", "", "Longer description")
	cmd.Flags().StringVar(&f.code, "code", "", "Manual code (e.g. M-101)")
	cmd.Flags().Float64Var(&f.target, "target", 0, "Target quantity")
	cmd.Flags().StringVar(&f.unit, "unit", "", "Measurement unit")
	cmd.Flags().StringVar(&f.responsible, "responsible", "", "Responsible party")
	cmd.Flags().StringVar(&f.deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&f.municipalities, "municipio", nil, "Target municipality (repeatable)")
	cmd.Flags().StringArrayVar(&f.budget, "budget", nil, "Annual budget as year=amount (repeatable)")
}

// parseBudget turns repeated year=amount flags into budget years.
func parseBudget(entries []string) ([]domain.BudgetYear, error) {
	out := make([]domain.BudgetYear, 0, len(entries))
	for _, e := range entries {
		yearStr, amountStr, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid budget %q: expected year=amount", e)
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("invalid budget year %q", yearStr)
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid budget amount %q", amountStr)
		}
		out = append(out, domain.BudgetYear{Year: year, Amount: amount})
	}
	return out, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return &t, nil
}

func newGoalAddCmd(app *App) *cobra.Command {
	var flags goalFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal on an initiative",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := activePlanID(ctx, app)
			if err != nil {
				return err
			}

			g := &domain.Goal{
				ManualCode:     flags.code,
				Name:           flags.name,
				Description:    flags.description,
				TargetQty:      flags.target,
				Unit:           flags.unit,
				Responsible:    flags.responsible,
				Municipalities: flags.municipalities,
			}

			// Missing required flags on a terminal open the wizard;
			// otherwise the service rejects with a clear message.
			if (flags.initiative == "" || flags.name == "" || flags.target == 0) &&
				app.IsInteractive != nil && app.IsInteractive() {
				in := goalFormInput{
					Name:        flags.name,
					ManualCode:  flags.code,
					Description: flags.description,
					Unit:        flags.unit,
					Responsible: flags.responsible,
					Deadline:    flags.deadline,
				}
				if flags.target > 0 {
					in.Target = strconv.FormatFloat(flags.target, 'f', -1, 64)
				}
				form, err := wizardGoalForm(ctx, app, planID, &in)
				if err != nil {
					return err
				}
				if err := form.Run(); err != nil {
					return err
				}
				g.NodeID = in.NodeID
				g.Name = in.Name
				g.Description = in.Description
				g.ManualCode = in.ManualCode
				g.Unit = in.Unit
				g.Responsible = in.Responsible
				g.Municipalities = in.Municipalities
				g.TargetQty, _ = strconv.ParseFloat(in.Target, 64)
				flags.deadline = in.Deadline
			} else {
				if flags.initiative == "" {
					return fmt.Errorf("--initiative is required")
				}
				nodeID, err := resolveNodeID(ctx, app, planID, flags.initiative)
				if err != nil {
					return err
				}
				g.NodeID = nodeID
			}

			deadline, err := parseOptionalDate(flags.deadline)
			if err != nil {
				return err
			}
			g.Deadline = deadline

			budget, err := parseBudget(flags.budget)
			if err != nil {
				return err
			}
			g.AnnualBudget = budget

			note, err := app.Goals.Create(ctx, g)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var node string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active plan's goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			rep, err := app.Reports.Goals(ctx, report.Predicate{}, app.Scope)
			if err != nil {
				return err
			}
			if rep.Plan == nil {
				return fmt.Errorf("no active plan (create one with 'plandes plan add')")
			}

			goals := rep.Goals
			if node != "" {
				nodeID, err := resolveNodeID(ctx, app, rep.Plan.ID, node)
				if err != nil {
					return err
				}
				filtered := goals[:0:0]
				for _, g := range goals {
					if g.Goal.NodeID == nodeID {
						filtered = append(filtered, g)
					}
				}
				goals = filtered
			}

			if len(goals) == 0 {
				fmt.Println("No goals yet.")
				return nil
			}
			fmt.Print(formatter.FormatGoalTable(goals))
			return nil
		},
	}

	cmd.Flags().StringVar(&node, "node", "", "Only goals under this node (code or id)")
	return cmd
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <goal>",
		Short: "Show one goal with its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rep, err := app.Reports.Goals(ctx, report.Predicate{}, app.Scope)
			if err != nil {
				return err
			}
			for _, g := range rep.Goals {
				if g.Goal.ID == goalID {
					fmt.Println(formatter.FormatGoalDetail(g))
					return nil
				}
			}
			return fmt.Errorf("goal %q is not visible in the current scope", args[0])
		},
	}
}

func newGoalUpdateCmd(app *App) *cobra.Command {
	var flags goalFlags

	cmd := &cobra.Command{
		Use:   "update <goal>",
		Short: "Change a goal's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			g, err := app.Goals.GetByID(ctx, goalID)
			if err != nil {
				return err
			}

			if flags.name != "" {
				g.Name = flags.name
			}
			if flags.description != "" {
				g.Description = flags.description
			}
			if flags.code != "" {
				g.ManualCode = flags.code
			}
			if flags.target != 0 {
				g.TargetQty = flags.target
			}
			if flags.unit != "" {
				g.Unit = flags.unit
			}
			if flags.responsible != "" {
				g.Responsible = flags.responsible
			}
			if flags.deadline != "" {
				deadline, err := parseOptionalDate(flags.deadline)
				if err != nil {
					return err
				}
				g.Deadline = deadline
			}
			if len(flags.municipalities) > 0 {
				g.Municipalities = flags.municipalities
			}
			if len(flags.budget) > 0 {
				budget, err := parseBudget(flags.budget)
				if err != nil {
					return err
				}
				g.AnnualBudget = budget
			}

			note, err := app.Goals.Update(ctx, g)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Lookup("initiative").Hidden = true
	return cmd
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <goal>",
		Short: "Delete a goal and its progress entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goalID, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			note, err := app.Goals.Delete(ctx, goalID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}
}
