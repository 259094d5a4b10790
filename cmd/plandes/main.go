package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/camiloruiz/plandes/internal/cli"
	"github.com/camiloruiz/plandes/internal/config"
	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/report"
	"github.com/camiloruiz/plandes/internal/repository"
	"github.com/camiloruiz/plandes/internal/service"
	"github.com/camiloruiz/plandes/internal/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.Init(os.Getenv("PLANDES_CONFIG"))
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.NoColor {
		os.Setenv("NO_COLOR", "1")
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	planRepo := repository.NewSQLitePlanRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	templates, err := template.LoadTemplateDir(cfg.TemplateDir)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	var observers []service.UseCaseObserver
	if cfg.Verbose {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Plans:    service.NewPlanService(planRepo, uow, templates, observers...),
		Nodes:    service.NewNodeService(nodeRepo, planRepo),
		Catalog:  service.NewCatalogService(catalogRepo),
		Goals:    service.NewGoalService(goalRepo, nodeRepo),
		Progress: service.NewProgressService(progressRepo, goalRepo),
		Reports:  service.NewReportService(planRepo, nodeRepo, goalRepo, progressRepo, observers...),

		Scope: report.Scope{
			Role:        cfg.Role,
			Responsible: cfg.Responsible,
		},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
