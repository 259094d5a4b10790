package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/db"
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/repository"
	"github.com/camiloruiz/plandes/internal/template"
)

type planService struct {
	plans     repository.PlanRepo
	uow       db.UnitOfWork
	templates []template.TemplateFile
	observer  UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, templates []template.TemplateFile, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:     plans,
		uow:       uow,
		templates: templates,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Create(ctx context.Context, name string, validityStart, validityEnd int, templateID string) (*domain.Plan, domain.Notification, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, domain.RejectionNote("the plan name cannot be empty"), nil
	}

	now := time.Now().UTC()
	plan := &domain.Plan{
		ID:            uuid.New().String(),
		Name:          trimmed,
		ValidityStart: validityStart,
		ValidityEnd:   validityEnd,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := plan.ValidateValidity(); err != nil {
		return nil, domain.RejectionNote(err.Error()), nil
	}

	if templateID == "" {
		templateID = "default"
	}
	schema, err := template.FindTemplate(s.templates, templateID)
	if err != nil {
		return nil, domain.RejectionNote(err.Error()), nil
	}
	nodes, err := template.Instantiate(schema, plan.ID)
	if err != nil {
		return nil, domain.Notification{}, fmt.Errorf("instantiating template: %w", err)
	}

	started := time.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		txNodes := repository.NewSQLiteNodeRepo(tx)

		if err := txPlans.DeactivateAll(ctx); err != nil {
			return err
		}
		if err := txPlans.Create(ctx, plan); err != nil {
			return err
		}
		for _, node := range nodes {
			if err := txNodes.Create(ctx, node); err != nil {
				return fmt.Errorf("creating node %q: %w", node.Code, err)
			}
		}
		return nil
	})
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "plan.create",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"plan_id": plan.ID, "nodes": len(nodes)},
		StartedAt: started,
	})
	if err != nil {
		return nil, domain.Notification{}, err
	}
	return plan, domain.SuccessNote(fmt.Sprintf("plan %q created and activated (%s)", plan.Name, plan.ValidityLabel())), nil
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) GetActive(ctx context.Context) (*domain.Plan, error) {
	return s.plans.GetActive(ctx)
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) UpdateMetadata(ctx context.Context, id, name string, validityStart, validityEnd int) (domain.Notification, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no plan with that id"), nil
		}
		return domain.Notification{}, err
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.RejectionNote("the plan name cannot be empty"), nil
	}
	plan.Name = trimmed
	plan.ValidityStart = validityStart
	plan.ValidityEnd = validityEnd
	if err := plan.ValidateValidity(); err != nil {
		return domain.RejectionNote(err.Error()), nil
	}

	plan.UpdatedAt = time.Now().UTC()
	if err := s.plans.Update(ctx, plan); err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("plan %q updated", plan.Name)), nil
}

func (s *planService) Delete(ctx context.Context, id string) (domain.Notification, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no plan with that id"), nil
		}
		return domain.Notification{}, err
	}

	started := time.Now()
	var promoted *domain.Plan
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)

		if err := txPlans.Delete(ctx, plan.ID); err != nil {
			return err
		}
		if !plan.Active {
			return nil
		}
		// The active plan went away: promote the oldest survivor.
		remaining, err := txPlans.List(ctx)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		promoted = remaining[0]
		if _, err := txPlans.Activate(ctx, promoted.ID); err != nil {
			return err
		}
		return nil
	})
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "plan.delete",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    map[string]any{"plan_id": plan.ID, "was_active": plan.Active},
		StartedAt: started,
	})
	if err != nil {
		return domain.Notification{}, err
	}

	msg := fmt.Sprintf("plan %q deleted", plan.Name)
	if promoted != nil {
		msg = fmt.Sprintf("%s; %q is now active", msg, promoted.Name)
	}
	return domain.DestructiveNote(msg), nil
}

func (s *planService) SetActive(ctx context.Context, id string) (domain.Notification, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown id leaves the current active plan untouched.
			return domain.RejectionNote("no plan with that id; nothing changed"), nil
		}
		return domain.Notification{}, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.DeactivateAll(ctx); err != nil {
			return err
		}
		ok, err := txPlans.Activate(ctx, plan.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("plan %s vanished during activation", plan.ID)
		}
		return nil
	})
	if err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("plan %q is now active", plan.Name)), nil
}

func (s *planService) Templates() []template.TemplateFile {
	return s.templates
}
