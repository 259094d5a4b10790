package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolvePlanID resolves a plan identifier: a full UUID or a UUID prefix.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveNodeID resolves a node identifier within a plan: the node's
// hierarchical code (e.g. "1.2.1"), a full UUID, or a UUID prefix.
func resolveNodeID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("node ID or code is required")
	}

	nodes, err := app.Nodes.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		if n.Code == input {
			return n.ID, nil
		}
	}
	for _, n := range nodes {
		if n.ID == input {
			return n.ID, nil
		}
	}

	var matches []string
	for _, n := range nodes {
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("node not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("node ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveGoalID resolves a goal within the active plan: the manual code,
// a full UUID, or a UUID prefix.
func resolveGoalID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("goal ID is required")
	}

	plan, err := app.Plans.GetActive(ctx)
	if err != nil {
		return "", fmt.Errorf("no active plan: %w", err)
	}
	goals, err := app.Goals.ListByPlan(ctx, plan.ID)
	if err != nil {
		return "", err
	}

	for _, g := range goals {
		if g.ManualCode != "" && strings.EqualFold(g.ManualCode, input) {
			return g.ID, nil
		}
	}
	for _, g := range goals {
		if g.ID == input {
			return g.ID, nil
		}
	}

	var matches []string
	for _, g := range goals {
		if strings.HasPrefix(g.ID, input) {
			matches = append(matches, g.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("goal not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("goal ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// activePlanID returns the active plan's id, with a friendly error when
// there is none.
func activePlanID(ctx context.Context, app *App) (string, error) {
	plan, err := app.Plans.GetActive(ctx)
	if err != nil {
		return "", fmt.Errorf("no active plan (create one with 'plandes plan add'): %w", err)
	}
	return plan.ID, nil
}
