package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/testutil"
)

func setupCatalogRepo(t *testing.T) *SQLiteCatalogRepo {
	t.Helper()
	return NewSQLiteCatalogRepo(testutil.NewTestDB(t))
}

func TestCatalogRepo_CreateAndGetByID(t *testing.T) {
	repo := setupCatalogRepo(t)
	ctx := context.Background()

	entry := testutil.NewTestCatalogEntry(domain.CatalogMunicipality, "Pasto")
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CatalogMunicipality, got.Kind)
	assert.Equal(t, "Pasto", got.Name)
}

func TestCatalogRepo_GetByID_NotFound(t *testing.T) {
	repo := setupCatalogRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogRepo_FindByName_CaseInsensitive(t *testing.T) {
	repo := setupCatalogRepo(t)
	ctx := context.Background()

	entry := testutil.NewTestCatalogEntry(domain.CatalogResponsible, "Secretaría de Planeación")
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.FindByName(ctx, domain.CatalogResponsible, "SECRETARíA DE PLANEACIóN")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	got, err = repo.FindByName(ctx, domain.CatalogResponsible, "  Secretaría de Planeación  ")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = repo.FindByName(ctx, domain.CatalogMunicipality, "Secretaría de Planeación")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogRepo_Create_DuplicateNameRejected(t *testing.T) {
	repo := setupCatalogRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogMunicipality, "Ipiales")))
	err := repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogMunicipality, "IPIALES"))
	require.Error(t, err)

	// Same name under a different kind is fine.
	require.NoError(t, repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogResponsible, "Ipiales")))
}

func TestCatalogRepo_List_FilteredByKindAndSorted(t *testing.T) {
	repo := setupCatalogRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogMunicipality, "Túquerres")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogMunicipality, "Barbacoas")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCatalogEntry(domain.CatalogUnit, "kilómetros")))

	municipalities, err := repo.List(ctx, domain.CatalogMunicipality)
	require.NoError(t, err)
	require.Len(t, municipalities, 2)
	assert.Equal(t, "Barbacoas", municipalities[0].Name)
	assert.Equal(t, "Túquerres", municipalities[1].Name)

	units, err := repo.List(ctx, domain.CatalogUnit)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestCatalogRepo_Delete(t *testing.T) {
	repo := setupCatalogRepo(t)
	ctx := context.Background()

	entry := testutil.NewTestCatalogEntry(domain.CatalogUnit, "hectáreas")
	require.NoError(t, repo.Create(ctx, entry))

	require.NoError(t, repo.Delete(ctx, entry.ID))
	_, err := repo.GetByID(ctx, entry.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
