package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camiloruiz/plandes/internal/testutil"
)

func setupPlanRepo(t *testing.T) *SQLitePlanRepo {
	t.Helper()
	return NewSQLitePlanRepo(testutil.NewTestDB(t))
}

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Plan de Desarrollo 2024-2027", testutil.WithValidity(2024, 2027))
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, "Plan de Desarrollo 2024-2027", got.Name)
	assert.Equal(t, 2024, got.ValidityStart)
	assert.Equal(t, 2027, got.ValidityEnd)
	assert.True(t, got.Active)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	repo := setupPlanRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlanRepo_GetActive(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	inactive := testutil.NewTestPlan("Old Plan", testutil.WithActive(false))
	active := testutil.NewTestPlan("Current Plan")
	require.NoError(t, repo.Create(ctx, inactive))
	require.NoError(t, repo.Create(ctx, active))

	got, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
}

func TestPlanRepo_GetActive_NoneActive(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Dormant", testutil.WithActive(false))
	require.NoError(t, repo.Create(ctx, plan))

	_, err := repo.GetActive(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlanRepo_List_OrderedByCreation(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	first := testutil.NewTestPlan("First", testutil.WithActive(false))
	second := testutil.NewTestPlan("Second", testutil.WithActive(false))
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "First", plans[0].Name)
	assert.Equal(t, "Second", plans[1].Name)
}

func TestPlanRepo_UpdateAndDelete(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	plan := testutil.NewTestPlan("Draft")
	require.NoError(t, repo.Create(ctx, plan))

	plan.Name = "Renamed"
	plan.ValidityEnd = 2028
	plan.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 2028, got.ValidityEnd)

	require.NoError(t, repo.Delete(ctx, plan.ID))
	_, err = repo.GetByID(ctx, plan.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlanRepo_DeactivateAllAndActivate(t *testing.T) {
	repo := setupPlanRepo(t)
	ctx := context.Background()

	a := testutil.NewTestPlan("A")
	b := testutil.NewTestPlan("B", testutil.WithActive(false))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.DeactivateAll(ctx))
	_, err := repo.GetActive(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	activated, err := repo.Activate(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, activated)

	got, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestPlanRepo_Activate_UnknownID(t *testing.T) {
	repo := setupPlanRepo(t)

	activated, err := repo.Activate(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, activated)
}
