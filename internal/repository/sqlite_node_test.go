package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/testutil"
)

func setupNodeRepo(t *testing.T) (*SQLiteNodeRepo, *SQLitePlanRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSQLiteNodeRepo(db), NewSQLitePlanRepo(db)
}

func TestNodeRepo_CreateAndGetByID(t *testing.T) {
	repo, planRepo := setupNodeRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Host")
	require.NoError(t, planRepo.Create(ctx, plan))

	line := testutil.NewTestNode(plan.ID, "Desarrollo Social")
	require.NoError(t, repo.Create(ctx, line))

	component := testutil.NewTestNode(plan.ID, "Educación",
		testutil.WithLevel(domain.LevelComponent),
		testutil.WithParentID(line.ID),
		testutil.WithCode("1.1"),
	)
	require.NoError(t, repo.Create(ctx, component))

	got, err := repo.GetByID(ctx, component.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.PlanID)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, line.ID, *got.ParentID)
	assert.Equal(t, domain.LevelComponent, got.Level)
	assert.Equal(t, "1.1", got.Code)
	assert.Equal(t, "Educación", got.Name)
}

func TestNodeRepo_GetByID_NotFound(t *testing.T) {
	repo, _ := setupNodeRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNodeRepo_ListMethods(t *testing.T) {
	repo, planRepo := setupNodeRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Hierarchy")
	require.NoError(t, planRepo.Create(ctx, plan))

	root1 := testutil.NewTestNode(plan.ID, "Line 1", testutil.WithCode("1"))
	root2 := testutil.NewTestNode(plan.ID, "Line 2", testutil.WithCode("2"))
	require.NoError(t, repo.Create(ctx, root1))
	require.NoError(t, repo.Create(ctx, root2))

	child := testutil.NewTestNode(plan.ID, "Component",
		testutil.WithLevel(domain.LevelComponent),
		testutil.WithParentID(root1.ID),
		testutil.WithCode("1.1"),
	)
	require.NoError(t, repo.Create(ctx, child))

	byPlan, err := repo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, byPlan, 3)

	roots, err := repo.ListRoots(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	children, err := repo.ListChildren(ctx, root1.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Component", children[0].Name)
}

func TestNodeRepo_UpdateAndDelete(t *testing.T) {
	repo, planRepo := setupNodeRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("UpdateDelete")
	require.NoError(t, planRepo.Create(ctx, plan))

	node := testutil.NewTestNode(plan.ID, "Original")
	require.NoError(t, repo.Create(ctx, node))

	node.Name = "Renamed"
	node.Code = "3"
	node.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, node))

	got, err := repo.GetByID(ctx, node.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "3", got.Code)

	require.NoError(t, repo.Delete(ctx, node.ID))
	_, err = repo.GetByID(ctx, node.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNodeRepo_SiblingCodeExists(t *testing.T) {
	repo, planRepo := setupNodeRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Codes")
	require.NoError(t, planRepo.Create(ctx, plan))

	root := testutil.NewTestNode(plan.ID, "Line 1", testutil.WithCode("1"))
	require.NoError(t, repo.Create(ctx, root))

	child := testutil.NewTestNode(plan.ID, "Component",
		testutil.WithLevel(domain.LevelComponent),
		testutil.WithParentID(root.ID),
		testutil.WithCode("1.1"),
	)
	require.NoError(t, repo.Create(ctx, child))

	// Same code among root siblings.
	exists, err := repo.SiblingCodeExists(ctx, plan.ID, nil, "1", "")
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the node itself.
	exists, err = repo.SiblingCodeExists(ctx, plan.ID, nil, "1", root.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Same code under a different parent is allowed.
	exists, err = repo.SiblingCodeExists(ctx, plan.ID, &root.ID, "1", "")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SiblingCodeExists(ctx, plan.ID, &root.ID, "1.1", "")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNodeRepo_DeleteCascadesFromPlan(t *testing.T) {
	repo, planRepo := setupNodeRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Cascade")
	require.NoError(t, planRepo.Create(ctx, plan))

	node := testutil.NewTestNode(plan.ID, "Line")
	require.NoError(t, repo.Create(ctx, node))

	require.NoError(t, planRepo.Delete(ctx, plan.ID))
	_, err := repo.GetByID(ctx, node.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
