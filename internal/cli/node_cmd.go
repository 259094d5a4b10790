package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the active plan's hierarchy nodes",
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeListCmd(app),
		newNodeUpdateCmd(app),
		newNodeRemoveCmd(app),
	)

	return cmd
}

func newNodeAddCmd(app *App) *cobra.Command {
	var parent, code, name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a node under a parent (no parent = new strategic line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := activePlanID(ctx, app)
			if err != nil {
				return err
			}

			var parentID *string
			if parent != "" {
				resolved, err := resolveNodeID(ctx, app, planID, parent)
				if err != nil {
					return err
				}
				parentID = &resolved
			}

			_, note, err := app.Nodes.Add(ctx, planID, parentID, code, name)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent node (code or id)")
	cmd.Flags().StringVar(&code, "code", "", "Hierarchical code, unique among siblings (e.g. 1.2)")
	cmd.Flags().StringVar(&name, "name", "", "Node name")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newNodeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the active plan's hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := activePlanID(ctx, app)
			if err != nil {
				return err
			}
			roots, orphans, err := app.Nodes.Tree(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlanTree(roots, nil))
			if orphans > 0 {
				fmt.Println(formatter.Dim(fmt.Sprintf("%d nodes had missing parents and were shown at the root", orphans)))
			}
			return nil
		},
	}
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var code, name string

	cmd := &cobra.Command{
		Use:   "update <node>",
		Short: "Change a node's code or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := activePlanID(ctx, app)
			if err != nil {
				return err
			}
			nodeID, err := resolveNodeID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}

			current, err := app.Nodes.GetByID(ctx, nodeID)
			if err != nil {
				return err
			}
			if code == "" {
				code = current.Code
			}
			if name == "" {
				name = current.Name
			}

			note, err := app.Nodes.Update(ctx, nodeID, code, name)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "New code")
	cmd.Flags().StringVar(&name, "name", "", "New name")

	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <node>",
		Short: "Delete a node and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := activePlanID(ctx, app)
			if err != nil {
				return err
			}
			nodeID, err := resolveNodeID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			note, err := app.Nodes.Remove(ctx, nodeID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.NoteIndicator(note))
			return nil
		},
	}
}
