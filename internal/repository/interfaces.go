package repository

import (
	"context"

	"github.com/camiloruiz/plandes/internal/domain"
)

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetActive(ctx context.Context) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
	// DeactivateAll clears the active flag on every plan.
	DeactivateAll(ctx context.Context) error
	// Activate sets the active flag on one plan. Returns false when no
	// plan has the given id.
	Activate(ctx context.Context, id string) (bool, error)
}

type NodeRepo interface {
	Create(ctx context.Context, n *domain.PlanNode) error
	GetByID(ctx context.Context, id string) (*domain.PlanNode, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanNode, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.PlanNode, error)
	ListRoots(ctx context.Context, planID string) ([]*domain.PlanNode, error)
	Update(ctx context.Context, n *domain.PlanNode) error
	Delete(ctx context.Context, id string) error
	// SiblingCodeExists reports whether another node under the same
	// parent already carries the code. excludeID skips the node being
	// updated.
	SiblingCodeExists(ctx context.Context, planID string, parentID *string, code, excludeID string) (bool, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	ListByNode(ctx context.Context, nodeID string) ([]*domain.Goal, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type ProgressRepo interface {
	Create(ctx context.Context, e *domain.ProgressEntry) error
	GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.ProgressEntry, error)
	Update(ctx context.Context, e *domain.ProgressEntry) error
	Delete(ctx context.Context, id string) error
}

type CatalogRepo interface {
	Create(ctx context.Context, e *domain.CatalogEntry) error
	GetByID(ctx context.Context, id string) (*domain.CatalogEntry, error)
	// FindByName resolves an entry by trimmed, case-insensitive name.
	FindByName(ctx context.Context, kind domain.CatalogKind, name string) (*domain.CatalogEntry, error)
	List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error)
	Delete(ctx context.Context, id string) error
}
