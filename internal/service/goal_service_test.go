package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/repository"
	"github.com/camiloruiz/plandes/internal/testutil"
)

type goalFixture struct {
	svc        GoalService
	line       *domain.PlanNode
	initiative *domain.PlanNode
}

func setupGoalService(t *testing.T) goalFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	planRepo := repository.NewSQLitePlanRepo(db)
	nodeRepo := repository.NewSQLiteNodeRepo(db)

	plan := testutil.NewTestPlan("Host")
	require.NoError(t, planRepo.Create(ctx, plan))

	line := testutil.NewTestNode(plan.ID, "Line")
	require.NoError(t, nodeRepo.Create(ctx, line))
	initiative := testutil.NewTestNode(plan.ID, "Initiative",
		testutil.WithLevel(domain.LevelInitiative),
		testutil.WithParentID(line.ID),
		testutil.WithCode("1.1.1.1"),
	)
	require.NoError(t, nodeRepo.Create(ctx, initiative))

	return goalFixture{
		svc:        NewGoalService(repository.NewSQLiteGoalRepo(db), nodeRepo),
		line:       line,
		initiative: initiative,
	}
}

func TestGoalService_Create(t *testing.T) {
	f := setupGoalService(t)
	ctx := context.Background()

	goal := testutil.NewTestGoal(f.initiative.ID, "Construir aulas")
	goal.ID = ""
	note, err := f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.True(t, note.OK())
	assert.NotEmpty(t, goal.ID)

	goals, err := f.svc.ListByNode(ctx, f.initiative.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestGoalService_Create_OnlyOnInitiatives(t *testing.T) {
	f := setupGoalService(t)
	ctx := context.Background()

	goal := testutil.NewTestGoal(f.line.ID, "Misplaced")
	note, err := f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())
	assert.Contains(t, note.Message, "initiatives")

	goal = testutil.NewTestGoal("missing", "Orphan")
	note, err = f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())
}

func TestGoalService_Create_Validation(t *testing.T) {
	f := setupGoalService(t)
	ctx := context.Background()

	goal := testutil.NewTestGoal(f.initiative.ID, "  ")
	note, err := f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())

	goal = testutil.NewTestGoal(f.initiative.ID, "Zero target", testutil.WithTarget(0, "unidades"))
	note, err = f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())

	goal = testutil.NewTestGoal(f.initiative.ID, "No responsible", testutil.WithResponsible(" "))
	note, err = f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())

	goal = testutil.NewTestGoal(f.initiative.ID, "Negative budget",
		testutil.WithAnnualBudget(domain.BudgetYear{Year: 2024, Amount: -1}))
	note, err = f.svc.Create(ctx, goal)
	require.NoError(t, err)
	assert.False(t, note.OK())
}

func TestGoalService_Update_IdentityIsImmutable(t *testing.T) {
	f := setupGoalService(t)
	ctx := context.Background()

	goal := testutil.NewTestGoal(f.initiative.ID, "Original")
	note, err := f.svc.Create(ctx, goal)
	require.NoError(t, err)
	require.True(t, note.OK())

	edited := *goal
	edited.Name = "Renamed"
	edited.NodeID = "some-other-node"
	note, err = f.svc.Update(ctx, &edited)
	require.NoError(t, err)
	assert.True(t, note.OK())

	got, err := f.svc.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, f.initiative.ID, got.NodeID, "the owning initiative never changes")
}

func TestGoalService_Delete(t *testing.T) {
	f := setupGoalService(t)
	ctx := context.Background()

	goal := testutil.NewTestGoal(f.initiative.ID, "Doomed")
	note, err := f.svc.Create(ctx, goal)
	require.NoError(t, err)
	require.True(t, note.OK())

	note, err = f.svc.Delete(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoteDestructive, note.Level)

	note, err = f.svc.Delete(ctx, goal.ID)
	require.NoError(t, err)
	assert.False(t, note.OK())
}
