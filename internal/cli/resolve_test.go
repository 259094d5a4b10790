package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/report"
	"github.com/camiloruiz/plandes/internal/repository"
	"github.com/camiloruiz/plandes/internal/service"
	"github.com/camiloruiz/plandes/internal/template"
	"github.com/camiloruiz/plandes/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	planRepo := repository.NewSQLitePlanRepo(database)
	nodeRepo := repository.NewSQLiteNodeRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	return &App{
		Plans:    service.NewPlanService(planRepo, uow, []template.TemplateFile{template.DefaultTemplate()}),
		Nodes:    service.NewNodeService(nodeRepo, planRepo),
		Catalog:  service.NewCatalogService(catalogRepo),
		Goals:    service.NewGoalService(goalRepo, nodeRepo),
		Progress: service.NewProgressService(progressRepo, goalRepo),
		Reports:  service.NewReportService(planRepo, nodeRepo, goalRepo, progressRepo),
		Scope:    report.Scope{Role: "admin"},
	}
}

func TestResolvePlanID(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	plan, note, err := app.Plans.Create(ctx, "Plan Departamental", 2024, 2027, "default")
	require.NoError(t, err)
	require.True(t, note.OK())

	t.Run("exact id", func(t *testing.T) {
		id, err := resolvePlanID(ctx, app, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, plan.ID, id)
	})

	t.Run("unique prefix", func(t *testing.T) {
		id, err := resolvePlanID(ctx, app, plan.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, plan.ID, id)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := resolvePlanID(ctx, app, "zzzz")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := resolvePlanID(ctx, app, "")
		assert.Error(t, err)
	})
}

func TestResolveNodeID_PrefersCode(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	plan, _, err := app.Plans.Create(ctx, "Plan", 2024, 2027, "default")
	require.NoError(t, err)

	nodes, err := app.Nodes.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	var line *domain.PlanNode
	for _, n := range nodes {
		if n.Level == domain.LevelLine {
			line = n
		}
	}
	require.NotNil(t, line)

	id, err := resolveNodeID(ctx, app, plan.ID, line.Code)
	require.NoError(t, err)
	assert.Equal(t, line.ID, id)

	id, err = resolveNodeID(ctx, app, plan.ID, line.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, line.ID, id)
}

func TestResolveGoalID_ManualCode(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	plan, _, err := app.Plans.Create(ctx, "Plan", 2024, 2027, "default")
	require.NoError(t, err)

	nodes, err := app.Nodes.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	var initiative *domain.PlanNode
	for _, n := range nodes {
		if n.Level == domain.LevelInitiative {
			initiative = n
		}
	}
	require.NotNil(t, initiative)

	g := testutil.NewTestGoal(initiative.ID, "Construir acueductos")
	g.ID = ""
	g.ManualCode = "M-101"
	note, err := app.Goals.Create(ctx, g)
	require.NoError(t, err)
	require.True(t, note.OK())

	id, err := resolveGoalID(ctx, app, "m-101")
	require.NoError(t, err)
	assert.Equal(t, g.ID, id)

	_, err = resolveGoalID(ctx, app, "M-999")
	assert.ErrorContains(t, err, "not found")
}

func TestParseBudget(t *testing.T) {
	budget, err := parseBudget([]string{"2024=1000000", "2025=1500000.50"})
	require.NoError(t, err)
	require.Len(t, budget, 2)
	assert.Equal(t, 2024, budget[0].Year)
	assert.Equal(t, 1000000.0, budget[0].Amount)
	assert.Equal(t, 1500000.50, budget[1].Amount)

	_, err = parseBudget([]string{"2024"})
	assert.ErrorContains(t, err, "year=amount")

	_, err = parseBudget([]string{"abc=100"})
	assert.ErrorContains(t, err, "invalid budget year")
}

func TestParseState(t *testing.T) {
	for input, want := range map[string]domain.ProgressState{
		"":             "",
		"cumplida":     domain.StateCompleted,
		"en-ejecucion": domain.StateInProgress,
		"sin_iniciar":  domain.StateNotStarted,
		"in_progress":  domain.StateInProgress,
	} {
		got, err := parseState(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseState("terminada")
	assert.Error(t, err)
}
