package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
)

// catalogColumns is the canonical SELECT column list for catalog_entries.
const catalogColumns = `id, kind, name, created_at`

// SQLiteCatalogRepo implements CatalogRepo over a SQLite database or transaction.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(db db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: db}
}

func (r *SQLiteCatalogRepo) Create(ctx context.Context, e *domain.CatalogEntry) error {
	query := `INSERT INTO catalog_entries (` + catalogColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		string(e.Kind),
		e.Name,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting catalog entry: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCatalogRepo) FindByName(ctx context.Context, kind domain.CatalogKind, name string) (*domain.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries
		WHERE kind = ? AND LOWER(name) = LOWER(?)`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, string(kind), strings.TrimSpace(name)))
}

func (r *SQLiteCatalogRepo) List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_entries WHERE kind = ? ORDER BY name COLLATE NOCASE`
	rows, err := r.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		var kindStr, createdAtStr string
		if err := rows.Scan(&e.ID, &kindStr, &e.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning catalog entry row: %w", err)
		}
		entry, err := r.populateEntry(&e, kindStr, createdAtStr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteCatalogRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting catalog entry: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) scanEntry(row *sql.Row) (*domain.CatalogEntry, error) {
	var e domain.CatalogEntry
	var kindStr, createdAtStr string

	err := row.Scan(&e.ID, &kindStr, &e.Name, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("catalog entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning catalog entry: %w", err)
	}
	return r.populateEntry(&e, kindStr, createdAtStr)
}

func (r *SQLiteCatalogRepo) populateEntry(e *domain.CatalogEntry, kindStr, createdAtStr string) (*domain.CatalogEntry, error) {
	e.Kind = domain.CatalogKind(kindStr)

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return e, nil
}
