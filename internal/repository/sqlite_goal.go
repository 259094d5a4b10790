package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
)

// goalColumns is the canonical SELECT column list for goals.
const goalColumns = `id, node_id, manual_code, name, description, target_qty, unit,
		responsible, deadline, municipalities, annual_budget, created_at, updated_at`

// goalColumnsAliased is the same column list prefixed with "g." for join queries.
const goalColumnsAliased = `g.id, g.node_id, g.manual_code, g.name, g.description, g.target_qty, g.unit,
		g.responsible, g.deadline, g.municipalities, g.annual_budget, g.created_at, g.updated_at`

// SQLiteGoalRepo implements GoalRepo over a SQLite database or transaction.
type SQLiteGoalRepo struct {
	db db.DBTX
}

// NewSQLiteGoalRepo creates a new SQLiteGoalRepo.
func NewSQLiteGoalRepo(db db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: db}
}

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	municipalities, err := encodeJSON(g.Municipalities)
	if err != nil {
		return err
	}
	budget, err := encodeJSON(g.AnnualBudget)
	if err != nil {
		return err
	}

	query := `INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		g.ID,
		g.NodeID,
		g.ManualCode,
		g.Name,
		g.Description,
		g.TargetQty,
		g.Unit,
		g.Responsible,
		nullableTimeToString(g.Deadline, dateLayout),
		municipalities,
		budget,
		g.CreatedAt.Format(time.RFC3339),
		g.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`
	return r.scanGoal(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteGoalRepo) ListByNode(ctx context.Context, nodeID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE node_id = ? ORDER BY manual_code, name`
	rows, err := r.db.QueryContext(ctx, query, nodeID)
	if err != nil {
		return nil, fmt.Errorf("listing goals by node: %w", err)
	}
	defer rows.Close()
	return r.scanGoals(rows)
}

func (r *SQLiteGoalRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumnsAliased + ` FROM goals g
		JOIN plan_nodes n ON g.node_id = n.id
		WHERE n.plan_id = ?
		ORDER BY g.manual_code, g.name`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing goals by plan: %w", err)
	}
	defer rows.Close()
	return r.scanGoals(rows)
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	municipalities, err := encodeJSON(g.Municipalities)
	if err != nil {
		return err
	}
	budget, err := encodeJSON(g.AnnualBudget)
	if err != nil {
		return err
	}

	query := `UPDATE goals SET manual_code = ?, name = ?, description = ?, target_qty = ?,
		unit = ?, responsible = ?, deadline = ?, municipalities = ?, annual_budget = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		g.ManualCode,
		g.Name,
		g.Description,
		g.TargetQty,
		g.Unit,
		g.Responsible,
		nullableTimeToString(g.Deadline, dateLayout),
		municipalities,
		budget,
		g.UpdatedAt.Format(time.RFC3339),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return nil
}

func (r *SQLiteGoalRepo) scanGoal(row *sql.Row) (*domain.Goal, error) {
	var g domain.Goal
	var createdAtStr, updatedAtStr, municipalitiesStr, budgetStr string
	var deadline sql.NullString

	err := row.Scan(
		&g.ID, &g.NodeID, &g.ManualCode, &g.Name, &g.Description, &g.TargetQty, &g.Unit,
		&g.Responsible, &deadline, &municipalitiesStr, &budgetStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	return r.populateGoal(&g, createdAtStr, updatedAtStr, municipalitiesStr, budgetStr, deadline)
}

func (r *SQLiteGoalRepo) scanGoals(rows *sql.Rows) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	for rows.Next() {
		var g domain.Goal
		var createdAtStr, updatedAtStr, municipalitiesStr, budgetStr string
		var deadline sql.NullString

		err := rows.Scan(
			&g.ID, &g.NodeID, &g.ManualCode, &g.Name, &g.Description, &g.TargetQty, &g.Unit,
			&g.Responsible, &deadline, &municipalitiesStr, &budgetStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning goal row: %w", err)
		}
		goal, err := r.populateGoal(&g, createdAtStr, updatedAtStr, municipalitiesStr, budgetStr, deadline)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteGoalRepo) populateGoal(
	g *domain.Goal,
	createdAtStr, updatedAtStr, municipalitiesStr, budgetStr string,
	deadline sql.NullString,
) (*domain.Goal, error) {
	if err := decodeJSON(municipalitiesStr, &g.Municipalities); err != nil {
		return nil, err
	}
	if err := decodeJSON(budgetStr, &g.AnnualBudget); err != nil {
		return nil, err
	}
	g.Deadline = parseNullableTime(deadline, dateLayout)

	var parseErr error
	g.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	g.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return g, nil
}
