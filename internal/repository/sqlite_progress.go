package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
)

// progressColumns is the canonical SELECT column list for progress_entries.
const progressColumns = `id, goal_id, year, quarter, quantity, expenditure,
		evidence_url, municipalities, population, created_at`

// progressColumnsAliased is the same column list prefixed with "e." for join queries.
const progressColumnsAliased = `e.id, e.goal_id, e.year, e.quarter, e.quantity, e.expenditure,
		e.evidence_url, e.municipalities, e.population, e.created_at`

// SQLiteProgressRepo implements ProgressRepo over a SQLite database or transaction.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(db db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: db}
}

func (r *SQLiteProgressRepo) Create(ctx context.Context, e *domain.ProgressEntry) error {
	municipalities, err := encodeJSON(e.Municipalities)
	if err != nil {
		return err
	}
	population, err := encodeJSON(e.Population)
	if err != nil {
		return err
	}

	query := `INSERT INTO progress_entries (` + progressColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.GoalID,
		e.Year,
		string(e.Quarter),
		e.Quantity,
		e.Expenditure,
		nullableStringToValue(e.EvidenceURL),
		municipalities,
		population,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting progress entry: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	query := `SELECT ` + progressColumns + ` FROM progress_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProgressRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error) {
	query := `SELECT ` + progressColumns + ` FROM progress_entries
		WHERE goal_id = ? ORDER BY year, quarter, created_at`
	rows, err := r.db.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, fmt.Errorf("listing progress entries by goal: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteProgressRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.ProgressEntry, error) {
	query := `SELECT ` + progressColumnsAliased + ` FROM progress_entries e
		JOIN goals g ON e.goal_id = g.id
		JOIN plan_nodes n ON g.node_id = n.id
		WHERE n.plan_id = ?
		ORDER BY e.year, e.quarter, e.created_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing progress entries by plan: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteProgressRepo) Update(ctx context.Context, e *domain.ProgressEntry) error {
	municipalities, err := encodeJSON(e.Municipalities)
	if err != nil {
		return err
	}
	population, err := encodeJSON(e.Population)
	if err != nil {
		return err
	}

	query := `UPDATE progress_entries SET year = ?, quarter = ?, quantity = ?, expenditure = ?,
		evidence_url = ?, municipalities = ?, population = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		e.Year,
		string(e.Quarter),
		e.Quantity,
		e.Expenditure,
		nullableStringToValue(e.EvidenceURL),
		municipalities,
		population,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating progress entry: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM progress_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting progress entry: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) scanEntry(row *sql.Row) (*domain.ProgressEntry, error) {
	var e domain.ProgressEntry
	var quarterStr, municipalitiesStr, populationStr, createdAtStr string
	var evidence sql.NullString

	err := row.Scan(
		&e.ID, &e.GoalID, &e.Year, &quarterStr, &e.Quantity, &e.Expenditure,
		&evidence, &municipalitiesStr, &populationStr, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("progress entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning progress entry: %w", err)
	}
	return r.populateEntry(&e, quarterStr, municipalitiesStr, populationStr, createdAtStr, evidence)
}

func (r *SQLiteProgressRepo) scanEntries(rows *sql.Rows) ([]*domain.ProgressEntry, error) {
	var entries []*domain.ProgressEntry
	for rows.Next() {
		var e domain.ProgressEntry
		var quarterStr, municipalitiesStr, populationStr, createdAtStr string
		var evidence sql.NullString

		err := rows.Scan(
			&e.ID, &e.GoalID, &e.Year, &quarterStr, &e.Quantity, &e.Expenditure,
			&evidence, &municipalitiesStr, &populationStr, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning progress entry row: %w", err)
		}
		entry, err := r.populateEntry(&e, quarterStr, municipalitiesStr, populationStr, createdAtStr, evidence)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteProgressRepo) populateEntry(
	e *domain.ProgressEntry,
	quarterStr, municipalitiesStr, populationStr, createdAtStr string,
	evidence sql.NullString,
) (*domain.ProgressEntry, error) {
	e.Quarter = domain.Quarter(quarterStr)

	if evidence.Valid {
		e.EvidenceURL = &evidence.String
	}
	if err := decodeJSON(municipalitiesStr, &e.Municipalities); err != nil {
		return nil, err
	}
	if err := decodeJSON(populationStr, &e.Population); err != nil {
		return nil, err
	}

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return e, nil
}
