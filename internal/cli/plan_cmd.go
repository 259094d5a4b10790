package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage development plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanUpdateCmd(app),
		newPlanActivateCmd(app),
		newPlanRemoveCmd(app),
		newPlanTemplatesCmd(app),
		newNodeCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name, templateID string
	var start, end int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, note, err := app.Plans.Create(context.Background(), name, start, end, templateID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().IntVar(&start, "start", 0, "First validity year (e.g. 2024)")
	cmd.Flags().IntVar(&end, "end", 0, "Last validity year (e.g. 2027)")
	cmd.Flags().StringVar(&templateID, "template", "", "Hierarchy template id (default: a blank skeleton)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans yet.")
				return nil
			}
			fmt.Print(formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [plan-id]",
		Short: "Show a plan's full hierarchy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var planID string
			var err error
			if len(args) == 1 {
				planID, err = resolvePlanID(ctx, app, args[0])
			} else {
				planID, err = activePlanID(ctx, app)
			}
			if err != nil {
				return err
			}

			plan, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			roots, orphans, err := app.Nodes.Tree(ctx, planID)
			if err != nil {
				return err
			}

			goalCounts := map[string]int{}
			goals, err := app.Goals.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			for _, g := range goals {
				goalCounts[g.NodeID]++
			}

			fmt.Println(formatter.Header(fmt.Sprintf("%s (%s)", plan.Name, plan.ValidityLabel())))
			fmt.Print(formatter.FormatPlanTree(roots, goalCounts))
			if orphans > 0 {
				fmt.Println(formatter.Dim(fmt.Sprintf("%d nodes had missing parents and were shown at the root", orphans)))
			}
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var name string
	var start, end int

	cmd := &cobra.Command{
		Use:   "update <plan-id>",
		Short: "Rename a plan or change its validity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			current, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			if name == "" {
				name = current.Name
			}
			if start == 0 {
				start = current.ValidityStart
			}
			if end == 0 {
				end = current.ValidityEnd
			}

			note, err := app.Plans.UpdateMetadata(ctx, planID, name, start, end)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New plan name")
	cmd.Flags().IntVar(&start, "start", 0, "New first validity year")
	cmd.Flags().IntVar(&end, "end", 0, "New last validity year")

	return cmd
}

func newPlanActivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <plan-id>",
		Short: "Make a plan the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			note, err := app.Plans.SetActive(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plan-id>",
		Short: "Delete a plan and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			note, err := app.Plans.Delete(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}
}

func newPlanTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List available hierarchy templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{}
			for _, tf := range app.Plans.Templates() {
				source := "built-in"
				if tf.Path != "" {
					source = tf.Path
				}
				rows = append(rows, []string{tf.Schema.ID, tf.Schema.Name, formatter.Dim(source)})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "Template", "Source"}, rows))
			return nil
		},
	}
}
