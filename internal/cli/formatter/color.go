package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/camiloruiz/plandes/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StateColor returns the lipgloss style for a progress-state bucket.
func StateColor(state domain.ProgressState) lipgloss.Style {
	switch state {
	case domain.StateCompleted:
		return StyleGreen
	case domain.StateInProgress:
		return StyleYellow
	case domain.StateNotStarted:
		return StyleRed
	default:
		return StyleDim
	}
}

// StateLabel returns a colored state label such as "● en ejecución".
func StateLabel(state domain.ProgressState) string {
	switch state {
	case domain.StateCompleted:
		return StyleGreen.Render("● cumplida")
	case domain.StateInProgress:
		return StyleYellow.Render("● en ejecución")
	case domain.StateNotStarted:
		return StyleRed.Render("● sin iniciar")
	default:
		return StyleDim.Render("● desconocido")
	}
}

// NoteIndicator renders a notification with a level-colored marker.
func NoteIndicator(n domain.Notification) string {
	switch n.Level {
	case domain.NoteSuccess:
		return StyleGreen.Render("✔ ") + n.Message
	case domain.NoteDestructive:
		return StyleRed.Render("✖ ") + n.Message
	default:
		return StyleYellow.Render("ℹ ") + n.Message
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
