package service

import (
	"context"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/hierarchy"
	"github.com/camiloruiz/plandes/internal/report"
	"github.com/camiloruiz/plandes/internal/template"
)

type PlanService interface {
	// Create opens a new plan from a template and makes it the active
	// plan. Every other plan is deactivated in the same transaction.
	Create(ctx context.Context, name string, validityStart, validityEnd int, templateID string) (*domain.Plan, domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetActive(ctx context.Context) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	UpdateMetadata(ctx context.Context, id, name string, validityStart, validityEnd int) (domain.Notification, error)
	// Delete removes a plan and everything under it. When the active
	// plan is deleted, the oldest remaining plan becomes active.
	Delete(ctx context.Context, id string) (domain.Notification, error)
	SetActive(ctx context.Context, id string) (domain.Notification, error)
	Templates() []template.TemplateFile
}

type NodeService interface {
	// Add creates a node under the given parent. The level follows from
	// the parent's level; a nil parent creates a strategic line.
	Add(ctx context.Context, planID string, parentID *string, code, name string) (*domain.PlanNode, domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.PlanNode, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanNode, error)
	// Tree materializes a plan's hierarchy sorted by code, returning
	// the roots and the number of orphaned nodes promoted to roots.
	Tree(ctx context.Context, planID string) ([]*hierarchy.TreeNode, int, error)
	Update(ctx context.Context, id, code, name string) (domain.Notification, error)
	Remove(ctx context.Context, id string) (domain.Notification, error)
}

type CatalogService interface {
	Add(ctx context.Context, kind domain.CatalogKind, name string) (*domain.CatalogEntry, domain.Notification, error)
	List(ctx context.Context, kind domain.CatalogKind) ([]*domain.CatalogEntry, error)
	Remove(ctx context.Context, kind domain.CatalogKind, name string) (domain.Notification, error)
}

type GoalService interface {
	Create(ctx context.Context, g *domain.Goal) (domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	ListByNode(ctx context.Context, nodeID string) ([]*domain.Goal, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) (domain.Notification, error)
	Delete(ctx context.Context, id string) (domain.Notification, error)
}

type ProgressService interface {
	Record(ctx context.Context, e *domain.ProgressEntry) (domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error)
	Delete(ctx context.Context, id string) (domain.Notification, error)
}

// GoalReport is the materialized report over the active plan. Plan is
// nil when no plan is active; every slice is empty in that case.
type GoalReport struct {
	Plan        *domain.Plan
	Goals       []report.FlatGoal
	Lines       []report.LineSummary
	OrphanCount int
}

type ReportService interface {
	// Goals flattens the active plan, applies the caller's scope and
	// predicate, and aggregates the surviving goals per line.
	Goals(ctx context.Context, p report.Predicate, scope report.Scope) (*GoalReport, error)
}
