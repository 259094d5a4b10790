package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"plans", "plan_nodes", "goals", "progress_entries", "catalog_entries"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_SiblingCodeUniqueness(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, name, validity_start, validity_end, active, created_at, updated_at)
		VALUES ('p1', 'Plan', 2024, 2027, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	insert := `INSERT INTO plan_nodes (id, plan_id, parent_id, level, code, name, created_at, updated_at)
		VALUES (?, 'p1', NULL, 'line', ?, 'n', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`
	_, err = db.Exec(insert, "n1", "1")
	require.NoError(t, err)

	_, err = db.Exec(insert, "n2", "1")
	assert.Error(t, err, "duplicate sibling code must be rejected")

	_, err = db.Exec(insert, "n3", "2")
	assert.NoError(t, err)
}

func TestMigrate_CascadeDeletePlan(t *testing.T) {
	db := openTestDB(t)

	mustExec := func(q string, args ...any) {
		t.Helper()
		_, err := db.Exec(q, args...)
		require.NoError(t, err)
	}

	mustExec(`INSERT INTO plans (id, name, validity_start, validity_end, active, created_at, updated_at)
		VALUES ('p1', 'Plan', 2024, 2027, 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO plan_nodes (id, plan_id, parent_id, level, code, name, created_at, updated_at)
		VALUES ('n1', 'p1', NULL, 'line', '1', 'Line', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO goals (id, node_id, name, created_at, updated_at)
		VALUES ('g1', 'n1', 'Goal', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO progress_entries (id, goal_id, year, quarter, created_at)
		VALUES ('e1', 'g1', 2024, 'T1', '2024-01-01T00:00:00Z')`)

	mustExec(`DELETE FROM plans WHERE id = 'p1'`)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM progress_entries`).Scan(&count))
	assert.Zero(t, count, "cascade should reach progress entries through nodes and goals")
}

func TestMigrate_CatalogUniquenessIsCaseInsensitive(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO catalog_entries (id, kind, name, created_at)
		VALUES (?, 'municipality', ?, '2024-01-01T00:00:00Z')`
	_, err := db.Exec(insert, "c1", "Pasto")
	require.NoError(t, err)

	_, err = db.Exec(insert, "c2", "pasto")
	assert.Error(t, err, "LOWER(name) index backs the service-level check")
}
