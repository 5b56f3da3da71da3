package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexeev-prog/fib-miles2km/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	promptStyle     lipgloss.Style
	strategyStyle   lipgloss.Style
	valueStyle      lipgloss.Style
	durationStyle   lipgloss.Style
	errorStyle      lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been
// invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	strategyStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	durationStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
