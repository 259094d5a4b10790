package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/domain"
)

// Plan options
type PlanOption func(*domain.Plan)

func WithValidity(start, end int) PlanOption {
	return func(p *domain.Plan) {
		p.ValidityStart = start
		p.ValidityEnd = end
	}
}

func WithActive(active bool) PlanOption {
	return func(p *domain.Plan) {
		p.Active = active
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:            uuid.New().String(),
		Name:          name,
		ValidityStart: 2024,
		ValidityEnd:   2027,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanNode options
type NodeOption func(*domain.PlanNode)

func WithLevel(l domain.NodeLevel) NodeOption {
	return func(n *domain.PlanNode) {
		n.Level = l
	}
}

func WithParentID(id string) NodeOption {
	return func(n *domain.PlanNode) {
		n.ParentID = &id
	}
}

func WithCode(code string) NodeOption {
	return func(n *domain.PlanNode) {
		n.Code = code
	}
}

func NewTestNode(planID, name string, opts ...NodeOption) *domain.PlanNode {
	now := time.Now().UTC()
	n := &domain.PlanNode{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Level:     domain.LevelLine,
		Code:      "1",
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Goal options
type GoalOption func(*domain.Goal)

func WithTarget(qty float64, unit string) GoalOption {
	return func(g *domain.Goal) {
		g.TargetQty = qty
		g.Unit = unit
	}
}

func WithResponsible(r string) GoalOption {
	return func(g *domain.Goal) {
		g.Responsible = r
	}
}

func WithDeadline(d time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.Deadline = &d
	}
}

func WithMunicipalities(names ...string) GoalOption {
	return func(g *domain.Goal) {
		g.Municipalities = names
	}
}

func WithAnnualBudget(years ...domain.BudgetYear) GoalOption {
	return func(g *domain.Goal) {
		g.AnnualBudget = years
	}
}

func NewTestGoal(nodeID, name string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:             uuid.New().String(),
		NodeID:         nodeID,
		ManualCode:     "M-1",
		Name:           name,
		TargetQty:      100,
		Unit:           "unidades",
		Responsible:    "Secretaría de Planeación",
		Municipalities: []string{domain.WholeTerritory},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProgressEntry options
type EntryOption func(*domain.ProgressEntry)

func WithPeriod(year int, q domain.Quarter) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Year = year
		e.Quarter = q
	}
}

func WithQuantity(qty float64) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Quantity = qty
	}
}

func WithExpenditure(amount float64) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Expenditure = amount
	}
}

func WithEvidenceURL(url string) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.EvidenceURL = &url
	}
}

func WithPopulation(p domain.PopulationBreakdown) EntryOption {
	return func(e *domain.ProgressEntry) {
		e.Population = p
	}
}

func NewTestEntry(goalID string, opts ...EntryOption) *domain.ProgressEntry {
	e := &domain.ProgressEntry{
		ID:             uuid.New().String(),
		GoalID:         goalID,
		Year:           2024,
		Quarter:        domain.QuarterT1,
		Quantity:       10,
		Expenditure:    0,
		Municipalities: []string{domain.WholeTerritory},
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CatalogEntry options
type CatalogOption func(*domain.CatalogEntry)

func NewTestCatalogEntry(kind domain.CatalogKind, name string, opts ...CatalogOption) *domain.CatalogEntry {
	e := &domain.CatalogEntry{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
