package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
)

// plandesHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func plandesHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// goalFormInput is what the interactive goal wizard collects. Numeric
// fields stay strings until the form is done; huh validation guarantees
// they parse.
type goalFormInput struct {
	NodeID         string
	Name           string
	Description    string
	ManualCode     string
	Target         string
	Unit           string
	Responsible    string
	Deadline       string
	Municipalities []string
}

// wizardGoalForm builds the interactive goal-creation form. Initiative,
// responsible and municipality choices come from the active plan and the
// catalogs; free-text fields validate inline.
func wizardGoalForm(ctx context.Context, app *App, planID string, in *goalFormInput) (*huh.Form, error) {
	nodes, err := app.Nodes.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	nodeOpts := make([]huh.Option[string], 0, len(nodes))
	for _, n := range nodes {
		if n.Level != domain.LevelInitiative {
			continue
		}
		nodeOpts = append(nodeOpts, huh.NewOption(fmt.Sprintf("%s — %s", n.Code, n.Name), n.ID))
	}
	if len(nodeOpts) == 0 {
		return nil, fmt.Errorf("the active plan has no initiatives yet; add nodes first")
	}

	respOpts, err := catalogOptions(ctx, app, domain.CatalogResponsible, nil)
	if err != nil {
		return nil, err
	}
	muniOpts, err := catalogOptions(ctx, app, domain.CatalogMunicipality, []string{domain.WholeTerritory})
	if err != nil {
		return nil, err
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("¿Iniciativa?").
				Options(nodeOpts...).
				Value(&in.NodeID),
			huh.NewInput().
				Title("Nombre de la meta").
				Value(&in.Name).
				Validate(validateRequired("el nombre")),
			huh.NewInput().
				Title("Código manual (opcional)").
				Placeholder("M-101").
				Value(&in.ManualCode),
			huh.NewText().
				Title("Descripción (opcional)").
				Value(&in.Description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cantidad meta").
				Placeholder("100").
				Value(&in.Target).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Unidad de medida").
				Placeholder("unidades").
				Value(&in.Unit).
				Validate(validateRequired("la unidad")),
			huh.NewInput().
				Title("Plazo (opcional, AAAA-MM-DD)").
				Value(&in.Deadline).
				Validate(validateOptionalDate),
		),
	}

	scopeGroup := huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Municipios").
			Options(muniOpts...).
			Value(&in.Municipalities),
	)
	if len(respOpts) > 0 {
		scopeGroup = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Responsable").
				Options(respOpts...).
				Value(&in.Responsible),
			huh.NewMultiSelect[string]().
				Title("Municipios").
				Options(muniOpts...).
				Value(&in.Municipalities),
		)
	}
	groups = append(groups, scopeGroup)

	return huh.NewForm(groups...).WithTheme(plandesHuhTheme()).WithShowHelp(false), nil
}

// catalogOptions turns a catalog into huh select options, with extra
// fixed entries prepended.
func catalogOptions(ctx context.Context, app *App, kind domain.CatalogKind, extra []string) ([]huh.Option[string], error) {
	entries, err := app.Catalog.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	opts := make([]huh.Option[string], 0, len(entries)+len(extra))
	for _, e := range extra {
		opts = append(opts, huh.NewOption(e, e))
	}
	for _, e := range entries {
		opts = append(opts, huh.NewOption(e.Name, e.Name))
	}
	return opts, nil
}

func validateRequired(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s es obligatorio", what)
		}
		return nil
	}
}

// validatePositiveFloat accepts a strictly positive number.
func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("ingrese un número mayor que cero")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use el formato AAAA-MM-DD")
	}
	return nil
}
