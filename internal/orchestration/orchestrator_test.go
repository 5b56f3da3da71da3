package orchestration

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
)

func allStrategies(t *testing.T) []convert.Strategy {
	t.Helper()
	strategies := convert.NewDefaultFactory().GetAll()
	out := make([]convert.Strategy, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s)
	}
	return out
}

func TestExecuteComparison_OneResultPerStrategy(t *testing.T) {
	strategies := allStrategies(t)
	results := ExecuteComparison(context.Background(), strategies, 10)

	if len(results) != len(strategies) {
		t.Fatalf("got %d results, want %d", len(results), len(strategies))
	}

	bySlug := make(map[string]ComparisonResult, len(results))
	for _, res := range results {
		bySlug[res.Slug] = res
	}
	if got := bySlug["linear"].Km; got != convert.LinearKm(10) {
		t.Errorf("linear Km = %v, want %v", got, convert.LinearKm(10))
	}
	if got := bySlug["walk"].Km; got != convert.WalkKm(10) {
		t.Errorf("walk Km = %v, want %v", got, convert.WalkKm(10))
	}
}

func TestExecuteComparison_Empty(t *testing.T) {
	results := ExecuteComparison(context.Background(), nil, 10)
	if len(results) != 0 {
		t.Errorf("got %d results for empty strategy list, want 0", len(results))
	}
}

func TestAnalyzeComparisonResults_Report(t *testing.T) {
	results := ExecuteComparison(context.Background(), allStrategies(t), 10)

	var buf bytes.Buffer
	code := AnalyzeComparisonResults(results, 10, &buf)
	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	report := buf.String()
	for _, want := range []string{
		"Strategy Comparison: 10.00 miles",
		"Linear",
		"Fibonacci walk",
		"Exact linear reference: 16.0934 km",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report should contain %q, got:\n%s", want, report)
		}
	}
}

func TestAnalyzeComparisonResults_SortsByDuration(t *testing.T) {
	results := []ComparisonResult{
		{Name: "Slow", Slug: "slow", Km: 1, Duration: 300},
		{Name: "Fast", Slug: "fast", Km: 1, Duration: 100},
	}

	var buf bytes.Buffer
	AnalyzeComparisonResults(results, 1, &buf)

	report := buf.String()
	if strings.Index(report, "Fast") > strings.Index(report, "Slow") {
		t.Errorf("faster strategy should be listed first:\n%s", report)
	}
}
