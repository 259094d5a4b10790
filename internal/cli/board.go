package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/camiloruiz/plandes/internal/cli/formatter"
	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/report"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive goal board for the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("the board needs a terminal; use 'plandes report goals' instead")
			}

			rep, err := app.Reports.Goals(context.Background(), report.Predicate{}, app.Scope)
			if err != nil {
				return err
			}
			if rep.Plan == nil {
				return fmt.Errorf("no active plan (create one with 'plandes plan add')")
			}

			m := newBoardModel(rep.Plan.Name, rep.Goals)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// stateBuckets is the cycling order of the board's state filter. The
// empty state means "all".
var stateBuckets = []domain.ProgressState{
	"",
	domain.StateNotStarted,
	domain.StateInProgress,
	domain.StateCompleted,
}

// boardModel is the bubbletea Model for the interactive goal board: a
// table of flattened goals, a live text filter, and a state filter
// cycled with Tab.
type boardModel struct {
	planName string
	goals    []report.FlatGoal

	tbl      table.Model
	filter   textinput.Model
	stateIdx int

	filtering bool
	width     int
	quitting  bool
}

func newBoardModel(planName string, goals []report.FlatGoal) boardModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filtrar..."
	ti.CharLimit = 120

	columns := []table.Column{
		{Title: "Código", Width: 8},
		{Title: "Meta", Width: 40},
		{Title: "Línea", Width: 24},
		{Title: "Responsable", Width: 22},
		{Title: "Avance", Width: 8},
		{Title: "Estado", Width: 14},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#3c3836")).
		Bold(false)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
		table.WithStyles(styles),
	)

	m := boardModel{planName: planName, goals: goals, tbl: tbl, filter: ti}
	m.refresh()
	return m
}

// refresh recomputes the table rows from the current filters.
func (m *boardModel) refresh() {
	p := report.Predicate{
		Text:  m.filter.Value(),
		State: stateBuckets[m.stateIdx],
	}
	visible := report.Filter(m.goals, p)

	rows := make([]table.Row, 0, len(visible))
	for _, g := range visible {
		code := g.Goal.ManualCode
		if code == "" {
			code = shortID(g.Goal.ID)
		}
		rows = append(rows, table.Row{
			code,
			g.Goal.Name,
			g.LineName,
			g.Goal.Responsible,
			fmt.Sprintf("%d%%", g.Percent),
			formatter.StateLabel(g.State()),
		})
	}
	m.tbl.SetRows(rows)
	m.tbl.SetCursor(0)
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.tbl.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		if m.filtering {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc:
				if msg.Type == tea.KeyEsc {
					m.filter.SetValue("")
				}
				m.filtering = false
				m.filter.Blur()
				m.refresh()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.refresh()
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		case "tab":
			m.stateIdx = (m.stateIdx + 1) % len(stateBuckets)
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header(m.planName) + "\n")

	bucket := "todas"
	if s := stateBuckets[m.stateIdx]; s != "" {
		bucket = formatter.StateLabel(s)
	}
	b.WriteString(fmt.Sprintf("%s %s   %s\n",
		formatter.Dim("estado:"), bucket,
		formatter.Dim(fmt.Sprintf("%d metas", len(m.tbl.Rows())))))

	if m.filtering {
		b.WriteString(m.filter.View() + "\n")
	} else if m.filter.Value() != "" {
		b.WriteString(formatter.Dim("filtro: "+m.filter.Value()) + "\n")
	}

	b.WriteString(m.tbl.View() + "\n")
	b.WriteString(formatter.Dim("↑/↓ mover · / filtrar · tab estado · q salir"))
	return b.String()
}
