package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/camiloruiz/plandes/internal/report"
	"github.com/camiloruiz/plandes/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Nodes    service.NodeService
	Catalog  service.CatalogService
	Goals    service.GoalService
	Progress service.ProgressService
	Reports  service.ReportService

	// Scope is the caller identity applied to every report query.
	Scope report.Scope

	// IsInteractive reports whether stdin is a terminal; wizards only
	// run when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "plandes" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "plandes",
		Short: "Seguimiento a planes de desarrollo",
	}

	// Accept underscores in flag names (--manual_code == --manual-code).
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newCatalogCmd(app),
		newGoalCmd(app),
		newAvanceCmd(app),
		newReportCmd(app),
		newBoardCmd(app),
	)

	return root
}
