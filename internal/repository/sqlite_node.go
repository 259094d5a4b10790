package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
)

// nodeColumns is the canonical SELECT column list for plan_nodes.
const nodeColumns = `id, plan_id, parent_id, level, code, name, created_at, updated_at`

// SQLiteNodeRepo implements NodeRepo over a SQLite database or transaction.
type SQLiteNodeRepo struct {
	db db.DBTX
}

// NewSQLiteNodeRepo creates a new SQLiteNodeRepo.
func NewSQLiteNodeRepo(db db.DBTX) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{db: db}
}

func (r *SQLiteNodeRepo) Create(ctx context.Context, n *domain.PlanNode) error {
	query := `INSERT INTO plan_nodes (` + nodeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.PlanID,
		n.ParentID, // *string: nil becomes SQL NULL
		string(n.Level),
		n.Code,
		n.Name,
		n.CreatedAt.Format(time.RFC3339),
		n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan node: %w", err)
	}
	return nil
}

func (r *SQLiteNodeRepo) GetByID(ctx context.Context, id string) (*domain.PlanNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM plan_nodes WHERE id = ?`
	return r.scanNode(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteNodeRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM plan_nodes WHERE plan_id = ?`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan nodes by plan: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.PlanNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM plan_nodes WHERE parent_id = ?`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child plan nodes: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) ListRoots(ctx context.Context, planID string) ([]*domain.PlanNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM plan_nodes WHERE plan_id = ? AND parent_id IS NULL`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing root plan nodes: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) Update(ctx context.Context, n *domain.PlanNode) error {
	query := `UPDATE plan_nodes SET parent_id = ?, level = ?, code = ?, name = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		n.ParentID,
		string(n.Level),
		n.Code,
		n.Name,
		n.UpdatedAt.Format(time.RFC3339),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan node: %w", err)
	}
	return nil
}

func (r *SQLiteNodeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_nodes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan node: %w", err)
	}
	return nil
}

func (r *SQLiteNodeRepo) SiblingCodeExists(ctx context.Context, planID string, parentID *string, code, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM plan_nodes
		WHERE plan_id = ? AND IFNULL(parent_id, '') = IFNULL(?, '') AND code = ? AND id != ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, planID, parentID, code, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking sibling code: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteNodeRepo) scanNode(row *sql.Row) (*domain.PlanNode, error) {
	var n domain.PlanNode
	var levelStr, createdAtStr, updatedAtStr string
	var parentID sql.NullString

	err := row.Scan(&n.ID, &n.PlanID, &parentID, &levelStr, &n.Code, &n.Name, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan node: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan node: %w", err)
	}
	return r.populateNode(&n, levelStr, createdAtStr, updatedAtStr, parentID)
}

func (r *SQLiteNodeRepo) scanNodes(rows *sql.Rows) ([]*domain.PlanNode, error) {
	var nodes []*domain.PlanNode
	for rows.Next() {
		var n domain.PlanNode
		var levelStr, createdAtStr, updatedAtStr string
		var parentID sql.NullString

		if err := rows.Scan(&n.ID, &n.PlanID, &parentID, &levelStr, &n.Code, &n.Name, &createdAtStr, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("scanning plan node row: %w", err)
		}
		node, err := r.populateNode(&n, levelStr, createdAtStr, updatedAtStr, parentID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan nodes: %w", err)
	}
	return nodes, nil
}

func (r *SQLiteNodeRepo) populateNode(
	n *domain.PlanNode,
	levelStr, createdAtStr, updatedAtStr string,
	parentID sql.NullString,
) (*domain.PlanNode, error) {
	n.Level = domain.NodeLevel(levelStr)

	if parentID.Valid {
		n.ParentID = &parentID.String
	}

	var parseErr error
	n.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	n.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return n, nil
}
