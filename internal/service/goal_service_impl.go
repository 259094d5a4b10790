package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/repository"
)

type goalService struct {
	goals repository.GoalRepo
	nodes repository.NodeRepo
}

func NewGoalService(goals repository.GoalRepo, nodes repository.NodeRepo) GoalService {
	return &goalService{goals: goals, nodes: nodes}
}

func (s *goalService) Create(ctx context.Context, g *domain.Goal) (domain.Notification, error) {
	if note, ok := s.validate(g); !ok {
		return note, nil
	}

	node, err := s.nodes.GetByID(ctx, g.NodeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no initiative with that id"), nil
		}
		return domain.Notification{}, err
	}
	if node.Level != domain.LevelInitiative {
		return domain.RejectionNote(fmt.Sprintf("goals attach to initiatives, not to a %s", node.Level)), nil
	}

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err := s.goals.Create(ctx, g); err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("goal %q created", g.Name)), nil
}

func (s *goalService) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

func (s *goalService) ListByNode(ctx context.Context, nodeID string) ([]*domain.Goal, error) {
	return s.goals.ListByNode(ctx, nodeID)
}

func (s *goalService) ListByPlan(ctx context.Context, planID string) ([]*domain.Goal, error) {
	return s.goals.ListByPlan(ctx, planID)
}

func (s *goalService) Update(ctx context.Context, g *domain.Goal) (domain.Notification, error) {
	current, err := s.goals.GetByID(ctx, g.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no goal with that id"), nil
		}
		return domain.Notification{}, err
	}
	if note, ok := s.validate(g); !ok {
		return note, nil
	}

	// Goal identity is immutable: the id and owning initiative never change.
	g.NodeID = current.NodeID
	g.CreatedAt = current.CreatedAt
	g.UpdatedAt = time.Now().UTC()
	if err := s.goals.Update(ctx, g); err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("goal %q updated", g.Name)), nil
}

func (s *goalService) Delete(ctx context.Context, id string) (domain.Notification, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no goal with that id"), nil
		}
		return domain.Notification{}, err
	}
	if err := s.goals.Delete(ctx, goal.ID); err != nil {
		return domain.Notification{}, err
	}
	return domain.DestructiveNote(fmt.Sprintf("goal %q and its progress entries removed", goal.Name)), nil
}

func (s *goalService) validate(g *domain.Goal) (domain.Notification, bool) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return domain.RejectionNote("the goal name cannot be empty"), false
	}
	if g.TargetQty <= 0 {
		return domain.RejectionNote("the target quantity must be greater than zero"), false
	}
	if strings.TrimSpace(g.Responsible) == "" {
		return domain.RejectionNote("the goal needs a responsible party"), false
	}
	for _, b := range g.AnnualBudget {
		if b.Amount < 0 {
			return domain.RejectionNote(fmt.Sprintf("the %d budget cannot be negative", b.Year)), false
		}
	}
	return domain.Notification{}, true
}
