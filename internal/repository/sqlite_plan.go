package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
)

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, name, validity_start, validity_end, active, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo over a SQLite database or transaction.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.ValidityStart,
		p.ValidityEnd,
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetActive(ctx context.Context) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE active = 1`
	return r.scanPlan(r.db.QueryRowContext(ctx, query))
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := r.scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET name = ?, validity_start = ?, validity_end = ?, active = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.ValidityStart,
		p.ValidityEnd,
		boolToInt(p.Active),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) DeactivateAll(ctx context.Context) error {
	query := `UPDATE plans SET active = 0, updated_at = ? WHERE active = 1`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("deactivating plans: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Activate(ctx context.Context, id string) (bool, error) {
	query := `UPDATE plans SET active = 1, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return false, fmt.Errorf("activating plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading activation result: %w", err)
	}
	return n > 0, nil
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var activeInt int
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &p.ValidityStart, &p.ValidityEnd, &activeInt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	return r.populatePlan(&p, activeInt, createdAtStr, updatedAtStr)
}

func (r *SQLitePlanRepo) scanPlanRow(rows *sql.Rows) (*domain.Plan, error) {
	var p domain.Plan
	var activeInt int
	var createdAtStr, updatedAtStr string

	if err := rows.Scan(&p.ID, &p.Name, &p.ValidityStart, &p.ValidityEnd, &activeInt, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning plan row: %w", err)
	}
	return r.populatePlan(&p, activeInt, createdAtStr, updatedAtStr)
}

func (r *SQLitePlanRepo) populatePlan(p *domain.Plan, activeInt int, createdAtStr, updatedAtStr string) (*domain.Plan, error) {
	p.Active = intToBool(activeInt)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
