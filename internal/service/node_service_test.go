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

func setupNodeService(t *testing.T) (NodeService, *domain.Plan) {
	t.Helper()
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)
	plan := testutil.NewTestPlan("Host")
	require.NoError(t, planRepo.Create(context.Background(), plan))
	return NewNodeService(repository.NewSQLiteNodeRepo(db), planRepo), plan
}

func TestNodeService_Add_LevelsFollowParent(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	line, note, err := svc.Add(ctx, plan.ID, nil, "1", "Desarrollo Social")
	require.NoError(t, err)
	require.True(t, note.OK())
	assert.Equal(t, domain.LevelLine, line.Level)

	component, note, err := svc.Add(ctx, plan.ID, &line.ID, "1.1", "Educación")
	require.NoError(t, err)
	require.True(t, note.OK())
	assert.Equal(t, domain.LevelComponent, component.Level)

	bet, note, err := svc.Add(ctx, plan.ID, &component.ID, "1.1.1", "Cobertura")
	require.NoError(t, err)
	require.True(t, note.OK())
	assert.Equal(t, domain.LevelBet, bet.Level)

	initiative, note, err := svc.Add(ctx, plan.ID, &bet.ID, "1.1.1.1", "Aulas rurales")
	require.NoError(t, err)
	require.True(t, note.OK())
	assert.Equal(t, domain.LevelInitiative, initiative.Level)

	// Initiatives are leaves.
	_, note, err = svc.Add(ctx, plan.ID, &initiative.ID, "1.1.1.1.1", "Too deep")
	require.NoError(t, err)
	assert.False(t, note.OK())
}

func TestNodeService_Add_RejectsDuplicateSiblingCode(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	line, _, err := svc.Add(ctx, plan.ID, nil, "1", "Line")
	require.NoError(t, err)
	_, note, err := svc.Add(ctx, plan.ID, nil, "1", "Other line")
	require.NoError(t, err)
	assert.False(t, note.OK())
	assert.Contains(t, note.Message, "already used")

	// The same code is fine under a different parent.
	node, note, err := svc.Add(ctx, plan.ID, &line.ID, "1", "Component")
	require.NoError(t, err)
	assert.True(t, note.OK())
	assert.NotNil(t, node)
}

func TestNodeService_Add_RejectsEmptyFieldsAndBadRefs(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	_, note, err := svc.Add(ctx, plan.ID, nil, "  ", "Name")
	require.NoError(t, err)
	assert.False(t, note.OK())

	_, note, err = svc.Add(ctx, plan.ID, nil, "1", "  ")
	require.NoError(t, err)
	assert.False(t, note.OK())

	_, note, err = svc.Add(ctx, "missing-plan", nil, "1", "Name")
	require.NoError(t, err)
	assert.False(t, note.OK())

	missing := "missing-parent"
	_, note, err = svc.Add(ctx, plan.ID, &missing, "1", "Name")
	require.NoError(t, err)
	assert.False(t, note.OK())
}

func TestNodeService_Update_RevalidatesCode(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	a, _, err := svc.Add(ctx, plan.ID, nil, "1", "A")
	require.NoError(t, err)
	b, _, err := svc.Add(ctx, plan.ID, nil, "2", "B")
	require.NoError(t, err)

	note, err := svc.Update(ctx, b.ID, "1", "B")
	require.NoError(t, err)
	assert.False(t, note.OK(), "stealing a sibling's code is rejected")

	// Keeping one's own code while renaming is fine.
	note, err = svc.Update(ctx, a.ID, "1", "A renamed")
	require.NoError(t, err)
	assert.True(t, note.OK())

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A renamed", got.Name)
}

func TestNodeService_Tree_SortedByCode(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, plan.ID, nil, "10", "Tenth")
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, plan.ID, nil, "2", "Second")
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, plan.ID, nil, "1", "First")
	require.NoError(t, err)

	roots, orphans, err := svc.Tree(ctx, plan.ID)
	require.NoError(t, err)
	assert.Zero(t, orphans)
	require.Len(t, roots, 3)
	assert.Equal(t, "1", roots[0].Node.Code)
	assert.Equal(t, "2", roots[1].Node.Code)
	assert.Equal(t, "10", roots[2].Node.Code)
}

func TestNodeService_Remove_CascadesToDescendants(t *testing.T) {
	svc, plan := setupNodeService(t)
	ctx := context.Background()

	line, _, err := svc.Add(ctx, plan.ID, nil, "1", "Line")
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, plan.ID, &line.ID, "1.1", "Component")
	require.NoError(t, err)

	note, err := svc.Remove(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoteDestructive, note.Level)

	nodes, err := svc.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	note, err = svc.Remove(ctx, line.ID)
	require.NoError(t, err)
	assert.False(t, note.OK())
}
