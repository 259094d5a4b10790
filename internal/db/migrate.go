package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are written to be
// re-runnable; "duplicate column name" from ALTER TABLE is tolerated
// because the migration system re-runs every statement on startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		validity_start INTEGER NOT NULL,
		validity_end   INTEGER NOT NULL,
		active         INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plan_nodes (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		parent_id  TEXT REFERENCES plan_nodes(id) ON DELETE CASCADE,
		level      TEXT NOT NULL
		           CHECK(level IN ('line','component','bet','initiative')),
		code       TEXT NOT NULL,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_nodes_plan ON plan_nodes(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_nodes_parent ON plan_nodes(parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plan_nodes_sibling_code
		ON plan_nodes(plan_id, IFNULL(parent_id, ''), code)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id             TEXT PRIMARY KEY,
		node_id        TEXT NOT NULL REFERENCES plan_nodes(id) ON DELETE CASCADE,
		manual_code    TEXT NOT NULL DEFAULT '',
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		target_qty     REAL NOT NULL DEFAULT 0,
		unit           TEXT NOT NULL DEFAULT '',
		responsible    TEXT NOT NULL DEFAULT '',
		deadline       TEXT,
		municipalities TEXT NOT NULL DEFAULT '[]',
		annual_budget  TEXT NOT NULL DEFAULT '[]',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_node ON goals(node_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_responsible ON goals(responsible)`,

	`CREATE TABLE IF NOT EXISTS progress_entries (
		id             TEXT PRIMARY KEY,
		goal_id        TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		year           INTEGER NOT NULL,
		quarter        TEXT NOT NULL CHECK(quarter IN ('T1','T2','T3','T4')),
		quantity       REAL NOT NULL DEFAULT 0,
		expenditure    REAL NOT NULL DEFAULT 0,
		evidence_url   TEXT,
		municipalities TEXT NOT NULL DEFAULT '[]',
		population     TEXT NOT NULL DEFAULT '{}',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_progress_entries_goal ON progress_entries(goal_id)`,

	`CREATE TABLE IF NOT EXISTS catalog_entries (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL
		           CHECK(kind IN ('municipality','responsible','unit')),
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_catalog_kind_name
		ON catalog_entries(kind, LOWER(name))`,
}
