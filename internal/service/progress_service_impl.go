package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/repository"
)

type progressService struct {
	entries repository.ProgressRepo
	goals   repository.GoalRepo
}

func NewProgressService(entries repository.ProgressRepo, goals repository.GoalRepo) ProgressService {
	return &progressService{entries: entries, goals: goals}
}

func (s *progressService) Record(ctx context.Context, e *domain.ProgressEntry) (domain.Notification, error) {
	if !domain.ValidQuarters[string(e.Quarter)] {
		return domain.RejectionNote(fmt.Sprintf("unknown quarter %q (use T1, T2, T3 or T4)", e.Quarter)), nil
	}
	if e.Year < 1900 || e.Year > 2200 {
		return domain.RejectionNote(fmt.Sprintf("%d is not a plausible reporting year", e.Year)), nil
	}
	if e.Quantity < 0 {
		return domain.RejectionNote("the reported quantity cannot be negative"), nil
	}
	if e.Expenditure < 0 {
		return domain.RejectionNote("the reported expenditure cannot be negative"), nil
	}

	goal, err := s.goals.GetByID(ctx, e.GoalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no goal with that id"), nil
		}
		return domain.Notification{}, err
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return domain.Notification{}, err
	}
	return domain.SuccessNote(fmt.Sprintf("progress recorded for %q (%d-%s)", goal.Name, e.Year, e.Quarter)), nil
}

func (s *progressService) GetByID(ctx context.Context, id string) (*domain.ProgressEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *progressService) ListByGoal(ctx context.Context, goalID string) ([]*domain.ProgressEntry, error) {
	return s.entries.ListByGoal(ctx, goalID)
}

func (s *progressService) Delete(ctx context.Context, id string) (domain.Notification, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.RejectionNote("no progress entry with that id"), nil
		}
		return domain.Notification{}, err
	}
	if err := s.entries.Delete(ctx, entry.ID); err != nil {
		return domain.Notification{}, err
	}
	return domain.DestructiveNote(fmt.Sprintf("progress entry for %d-%s removed", entry.Year, entry.Quarter)), nil
}
