package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorSuccess = lipgloss.Color("#8BC34A")
	colorDanger  = lipgloss.Color("#E53935")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the form's lipgloss styles.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Blurred   lipgloss.Style
	Mode      lipgloss.Style
	Checking  lipgloss.Style
	Available lipgloss.Style
	Taken     lipgloss.Style
	Error     lipgloss.Style
	Hint      lipgloss.Style
	Box       lipgloss.Style
}

// DefaultStyles adapts to light and dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label:     lipgloss.NewStyle().Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(colorAccent),
		Blurred:   lipgloss.NewStyle().Foreground(colorMuted),
		Mode:      lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Checking:  lipgloss.NewStyle().Foreground(colorWarning),
		Available: lipgloss.NewStyle().Foreground(colorSuccess),
		Taken:     lipgloss.NewStyle().Foreground(colorDanger),
		Error:     lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(colorMuted),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(1, 2),
	}
}
