package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	factory := convert.NewDefaultFactory()
	all := factory.GetAll()
	strategies := make([]convert.Strategy, 0, len(all))
	for _, s := range all {
		strategies = append(strategies, s)
	}
	return NewModel(context.Background(), strategies)
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func pressEnter(m Model) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestModel_ConvertShowsAllStrategies(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "10")
	m = pressEnter(m)

	if len(m.results) != 4 {
		t.Fatalf("got %d results, want 4", len(m.results))
	}

	view := m.View()
	for _, want := range []string{"Linear", "Fibonacci walk", "Fibonacci cached", "Golden ratio"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain strategy %q", want)
		}
	}
	if !strings.Contains(view, "16.0934") {
		t.Errorf("view should contain the linear result, got:\n%s", view)
	}
}

func TestModel_InvalidInputShowsError(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "abc")
	m = pressEnter(m)

	if len(m.results) != 0 {
		t.Errorf("invalid input should clear results, got %d", len(m.results))
	}
	if !strings.Contains(m.View(), "Invalid distance value 'abc'") {
		t.Errorf("view should show the input error")
	}
}

func TestModel_NegativeInputRejected(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "-3")
	m = pressEnter(m)

	if m.inputErr == "" {
		t.Error("negative distance should be rejected")
	}
}

func TestModel_ClearResetsState(t *testing.T) {
	m := newTestModel(t)
	m = typeString(m, "10")
	m = pressEnter(m)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)

	if len(m.results) != 0 || m.inputErr != "" || m.input.Value() != "" {
		t.Error("ctrl+l should clear input, results and error")
	}
}

func TestModel_QuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("esc should quit, got %T", msg)
	}
}

func TestModel_StrategiesSortedBySlug(t *testing.T) {
	m := newTestModel(t)
	slugs := make([]string, len(m.strategies))
	for i, s := range m.strategies {
		slugs[i] = s.Slug()
	}
	want := []string{"cached", "golden", "linear", "walk"}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("strategies order = %v, want %v", slugs, want)
		}
	}
}
