package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/hierarchy"
	"github.com/camiloruiz/plandes/internal/repository"
)

type nodeService struct {
	nodes repository.NodeRepo
	plans repository.PlanRepo
}

func NewNodeService(nodes repository.NodeRepo, plans repository.PlanRepo) NodeService {
	return &nodeService{nodes: nodes, plans: plans}
}

func (s *nodeService) Add(ctx context.Context, planID string, parentID *string, code, name string) (*domain.PlanNode, domain.Notification, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, domain.RejectionNote("the code cannot be empty"), nil
	}
	if name == "" {
		return nil, domain.RejectionNote("the name cannot be empty"), nil
	}

	if _, err := s.plans.GetByID(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.RejectionNote("no plan with that id"), nil
		}
		return nil, domain.Notification{}, err
	}

	level := domain.LevelLine
	if parentID != nil {
		parent, err := s.nodes.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.RejectionNote("no parent node with that id"), nil
			}
			return nil, domain.Notification{}, err
		}
		if parent.PlanID != planID {
			return nil, domain.RejectionNote("the parent belongs to a different plan"), nil
		}
		child, ok := domain.ChildLevel(parent.Level)
		if !ok {
			return nil, domain.RejectionNote("initiatives hold goals, not child nodes"), nil
		}
		level = child
	}

	taken, err := s.nodes.SiblingCodeExists(ctx, planID, parentID, code, "")
	if err != nil {
		return nil, domain.Notification{}, err
	}
	if taken {
		return nil, domain.RejectionNote(fmt.Sprintf("code %q is already used by a sibling", code)), nil
	}

	now := time.Now().UTC()
	node := &domain.PlanNode{
		ID:        uuid.New().String(),
		PlanID:    planID,
		ParentID:  parentID,
		Level:     level,
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.nodes.Create(ctx, node); err != nil {
		return nil, domain.Notification{}, err
	}
	return node, domain.SuccessNote(fmt.Sprintf("%s %s %q added", level, code, name)), nil
}

func (s *nodeService) GetByID(ctx context.Context, id string) (*domain.PlanNode, error) {
	return s.nodes.GetByID(ctx, id)
}

func (s *nodeService) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanNode, error) {
	return s.nodes.ListByPlan(ctx, planID)
}

func (s *nodeService) Tree(ctx context.Context, planID string) ([]*hierarchy.TreeNode, int, error) {
	nodes, err := s.nodes.ListByPlan(ctx, planID)
	if err != nil {
		return nil, 0, err
	}
	roots, orphans := hierarchy.Build(nodes)
	return roots, orphans, nil
}

func (s *nodeService) Update(ctx context.Context, id, code, name string) (domain.Notification, error) {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no node with that id"), nil
		}
		return domain.Notification{}, err
	}

	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return domain.RejectionNote("the code cannot be empty"), nil
	}
	if name == "" {
		return domain.RejectionNote("the name cannot be empty"), nil
	}

	if code != node.Code {
		taken, err := s.nodes.SiblingCodeExists(ctx, node.PlanID, node.ParentID, code, node.ID)
		if err != nil {
			return domain.Notification{}, err
		}
		if taken {
			return domain.RejectionNote(fmt.Sprintf("code %q is already used by a sibling", code)), nil
		}
	}

	node.Code = code
	node.Name = name
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodes.Update(ctx, node); err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("node %s updated", node.Code)), nil
}

func (s *nodeService) Remove(ctx context.Context, id string) (domain.Notification, error) {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no node with that id"), nil
		}
		return domain.Notification{}, err
	}
	if err := s.nodes.Delete(ctx, node.ID); err != nil {
		return domain.Notification{}, err
	}
	return domain.DestructiveNote(fmt.Sprintf("node %s %q removed, along with everything under it", node.Code, node.Name)), nil
}
