package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	"github.com/alexeev-prog/fib-miles2km/internal/service"
)

func newTestREPL(t *testing.T, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	svc := service.NewConverterService(convert.NewDefaultFactory())
	r := NewREPL(svc, "linear")

	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	return r, &out
}

func TestREPL_ConvertAndQuit(t *testing.T) {
	r, out := newTestREPL(t, "10\nquit\n")
	r.Start(context.Background())

	got := out.String()
	if !strings.Contains(got, "10.00 miles = 16.09 km") {
		t.Errorf("output %q should contain the conversion result", got)
	}
	if !strings.Contains(got, "Goodbye.") {
		t.Errorf("output %q should contain the farewell", got)
	}
}

func TestREPL_SwitchStrategy(t *testing.T) {
	r, out := newTestREPL(t, "strategy walk\n10\nexit\n")
	r.Start(context.Background())

	got := out.String()
	if !strings.Contains(got, "Switched to strategy: walk") {
		t.Errorf("output %q should confirm the switch", got)
	}
	if !strings.Contains(got, "10.00 miles = 16.20 km") {
		t.Errorf("output %q should contain the walk interpolation result", got)
	}
}

func TestREPL_UnknownStrategy(t *testing.T) {
	r, out := newTestREPL(t, "strategy bogus\nquit\n")
	r.Start(context.Background())

	got := out.String()
	if !strings.Contains(got, "Unknown strategy 'bogus'") {
		t.Errorf("output %q should report the unknown strategy", got)
	}
	if r.currentStrategy != "linear" {
		t.Errorf("currentStrategy = %q, want linear kept after failed switch", r.currentStrategy)
	}
}

func TestREPL_InvalidInput(t *testing.T) {
	r, out := newTestREPL(t, "abc\nquit\n")
	r.Start(context.Background())

	if got := out.String(); !strings.Contains(got, "Invalid distance value 'abc'") {
		t.Errorf("output %q should report the invalid value", got)
	}
}

func TestREPL_StrategiesCommand(t *testing.T) {
	r, out := newTestREPL(t, "strategies\nquit\n")
	r.Start(context.Background())

	if got := out.String(); !strings.Contains(got, "cached, golden, linear, walk") {
		t.Errorf("output %q should list all strategies in sorted order", got)
	}
}

func TestREPL_EOFEndsSession(t *testing.T) {
	r, _ := newTestREPL(t, "10\n")
	// No quit command: the scanner hits EOF and Start must return.
	r.Start(context.Background())
}

func TestNewREPL_AllSelectsFirstStrategy(t *testing.T) {
	svc := service.NewConverterService(convert.NewDefaultFactory())
	r := NewREPL(svc, "all")
	if r.currentStrategy != "cached" {
		t.Errorf("currentStrategy = %q, want first sorted strategy %q", r.currentStrategy, "cached")
	}
}
