// Package tui implements the interactive terminal dashboard. A distance
// typed into the input field is converted live by every registered
// strategy, and the per-strategy results are shown side by side.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
	"github.com/alexeev-prog/fib-miles2km/internal/orchestration"
)

// KeyMap defines the key bindings for the dashboard.
type KeyMap struct {
	Convert key.Binding
	Clear   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Convert: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "convert"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Convert, k.Clear, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Convert, k.Clear}, {k.Help, k.Quit}}
}

// Model is the root bubbletea model for the conversion dashboard.
type Model struct {
	ctx        context.Context
	strategies []convert.Strategy
	input      textinput.Model
	keymap     KeyMap
	help       help.Model

	results  []orchestration.ComparisonResult
	inputErr string
	width    int
	exitCode int
}

// NewModel creates a new dashboard model backed by the given strategies.
func NewModel(ctx context.Context, strategies []convert.Strategy) Model {
	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].Slug() < strategies[j].Slug()
	})

	input := textinput.New()
	input.Placeholder = "distance in miles"
	input.Prompt = promptStyle.Render("miles> ")
	input.CharLimit = 32
	input.Focus()

	return Model{
		ctx:        ctx,
		strategies: strategies,
		input:      input,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		exitCode:   apperrors.ExitSuccess,
	}
}

// Init returns the initial command: a blinking cursor in the input field.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keymap.Clear):
			m.input.SetValue("")
			m.results = nil
			m.inputErr = ""
			return m, nil

		case key.Matches(msg, m.keymap.Convert):
			m.convert()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// convert parses the current input and refreshes the result rows.
func (m *Model) convert() {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return
	}

	miles, err := strconv.ParseFloat(raw, 64)
	if err != nil || miles < 0 {
		m.results = nil
		m.inputErr = fmt.Sprintf("Invalid distance value '%s'.", raw)
		return
	}

	m.inputErr = ""
	m.results = orchestration.ExecuteComparison(m.ctx, m.strategies, miles)
}

// View renders the dashboard: title, input field, result rows and help.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Distance Converter"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.inputErr != "":
		b.WriteString(errorStyle.Render(m.inputErr))
		b.WriteString("\n")
	case len(m.results) > 0:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// renderResults renders one panel line per strategy.
func (m Model) renderResults() string {
	var rows []string
	for _, res := range m.results {
		row := fmt.Sprintf("%s  %s  %s",
			strategyStyle.Render(fmt.Sprintf("%-16s", res.Name)),
			valueStyle.Render(fmt.Sprintf("%10.4f km", res.Km)),
			durationStyle.Render(res.Duration.String()))
		rows = append(rows, row)
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}

// Run is the public entry point for the TUI mode. It creates the bubbletea
// program, runs it, and returns the exit code.
func Run(ctx context.Context, factory convert.Factory) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	all := factory.GetAll()
	strategies := make([]convert.Strategy, 0, len(all))
	for _, s := range all {
		strategies = append(strategies, s)
	}

	model := NewModel(ctx, strategies)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
