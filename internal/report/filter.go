package report

import (
	"strings"

	"github.com/camiloruiz/plandes/internal/domain"
)

// Predicate narrows a flattened goal list. Empty fields mean "no
// constraint"; supplied fields are ANDed.
type Predicate struct {
	Text         string // case-insensitive substring over name, description, manual code
	Responsible  string // exact match
	Municipality string // matches any of the goal's municipalities
	State        domain.ProgressState
}

// Scope is the caller identity supplied by the session collaborator.
// A responsible-party user only ever sees their own goals, regardless
// of the predicate they supply.
type Scope struct {
	Role        string
	Responsible string
}

// RoleResponsible marks a session scoped to a single responsible party.
const RoleResponsible = "responsible"

// Apply forces the scope's constraints into the predicate.
func (s Scope) Apply(p Predicate) Predicate {
	if s.Role == RoleResponsible && s.Responsible != "" {
		p.Responsible = s.Responsible
	}
	return p
}

// Filter returns the goals matching the predicate, preserving input
// order. The input slice is not mutated.
func Filter(goals []FlatGoal, p Predicate) []FlatGoal {
	out := make([]FlatGoal, 0, len(goals))
	for _, g := range goals {
		if matches(g, p) {
			out = append(out, g)
		}
	}
	return out
}

func matches(g FlatGoal, p Predicate) bool {
	if p.Text != "" && !matchesText(g, p.Text) {
		return false
	}
	if p.Responsible != "" && g.Goal.Responsible != p.Responsible {
		return false
	}
	if p.Municipality != "" && !g.Goal.CoversMunicipality(p.Municipality) {
		return false
	}
	if p.State != "" && g.State() != p.State {
		return false
	}
	return true
}

func matchesText(g FlatGoal, text string) bool {
	needle := strings.ToLower(text)
	for _, field := range []string{g.Goal.Name, g.Goal.Description, g.Goal.ManualCode} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
