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

func setupCatalogService(t *testing.T) CatalogService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewCatalogService(repository.NewSQLiteCatalogRepo(db))
}

func TestCatalogService_AddAndList(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	entry, note, err := svc.Add(ctx, domain.CatalogMunicipality, "  Pasto  ")
	require.NoError(t, err)
	assert.True(t, note.OK())
	require.NotNil(t, entry)
	assert.Equal(t, "Pasto", entry.Name, "names are stored trimmed")

	entries, err := svc.List(ctx, domain.CatalogMunicipality)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCatalogService_Add_RejectsDuplicateCaseInsensitive(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	_, note, err := svc.Add(ctx, domain.CatalogResponsible, "Secretaría de Salud")
	require.NoError(t, err)
	require.True(t, note.OK())

	entry, note, err := svc.Add(ctx, domain.CatalogResponsible, "SECRETARíA DE SALUD")
	require.NoError(t, err)
	assert.False(t, note.OK())
	assert.Nil(t, entry)
	assert.Contains(t, note.Message, "already exists")
}

func TestCatalogService_Add_RejectsEmptyAndUnknownKind(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	_, note, err := svc.Add(ctx, domain.CatalogUnit, "   ")
	require.NoError(t, err)
	assert.False(t, note.OK())

	_, note, err = svc.Add(ctx, domain.CatalogKind("department"), "Nariño")
	require.NoError(t, err)
	assert.False(t, note.OK())
}

func TestCatalogService_Add_ReservedMunicipalitySentinel(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	_, note, err := svc.Add(ctx, domain.CatalogMunicipality, "todo el departamento")
	require.NoError(t, err)
	assert.False(t, note.OK())
	assert.Contains(t, note.Message, "reserved")

	// The sentinel is only reserved for municipalities.
	_, note, err = svc.Add(ctx, domain.CatalogUnit, domain.WholeTerritory)
	require.NoError(t, err)
	assert.True(t, note.OK())
}

func TestCatalogService_Remove(t *testing.T) {
	svc := setupCatalogService(t)
	ctx := context.Background()

	_, note, err := svc.Add(ctx, domain.CatalogMunicipality, "Ipiales")
	require.NoError(t, err)
	require.True(t, note.OK())

	note, err = svc.Remove(ctx, domain.CatalogMunicipality, "ipiales")
	require.NoError(t, err)
	assert.Equal(t, domain.NoteDestructive, note.Level)

	entries, err := svc.List(ctx, domain.CatalogMunicipality)
	require.NoError(t, err)
	assert.Empty(t, entries)

	note, err = svc.Remove(ctx, domain.CatalogMunicipality, "Ipiales")
	require.NoError(t, err)
	assert.False(t, note.OK())
}
