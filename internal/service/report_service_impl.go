package service

import (
	"context"
	"errors"
	"time"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/hierarchy"
	"github.com/camiloruiz/plandes/internal/report"
	"github.com/camiloruiz/plandes/internal/repository"
)

type reportService struct {
	plans    repository.PlanRepo
	nodes    repository.NodeRepo
	goals    repository.GoalRepo
	entries  repository.ProgressRepo
	observer UseCaseObserver
}

func NewReportService(
	plans repository.PlanRepo,
	nodes repository.NodeRepo,
	goals repository.GoalRepo,
	entries repository.ProgressRepo,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		plans:    plans,
		nodes:    nodes,
		goals:    goals,
		entries:  entries,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *reportService) Goals(ctx context.Context, p report.Predicate, scope report.Scope) (*GoalReport, error) {
	started := time.Now()

	plan, err := s.plans.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// No active plan: an empty report, not an error.
			return &GoalReport{}, nil
		}
		return nil, err
	}

	nodes, err := s.nodes.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}

	roots, orphans := hierarchy.Build(nodes)

	goalsByNode := make(map[string][]*domain.Goal, len(goals))
	for _, g := range goals {
		goalsByNode[g.NodeID] = append(goalsByNode[g.NodeID], g)
	}
	entriesByGoal := make(map[string][]*domain.ProgressEntry, len(entries))
	for _, e := range entries {
		entriesByGoal[e.GoalID] = append(entriesByGoal[e.GoalID], e)
	}

	flat := report.Flatten(plan, roots, goalsByNode, entriesByGoal)
	filtered := report.Filter(flat, scope.Apply(p))

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     "report.goals",
		Duration: time.Since(started),
		Success:  true,
		Fields: map[string]any{
			"plan_id": plan.ID,
			"goals":   len(filtered),
			"orphans": orphans,
		},
		StartedAt: started,
	})

	return &GoalReport{
		Plan:        plan,
		Goals:       filtered,
		Lines:       report.AggregateByLine(filtered),
		OrphanCount: orphans,
	}, nil
}
