// Package orchestration coordinates the concurrent execution of several
// conversion strategies for a single distance and renders the comparison
// report.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexeev-prog/fib-miles2km/internal/cli"
	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
)

// ComparisonResult encapsulates the outcome of one strategy run. It serves
// as a standardized container for results from different strategies,
// facilitating comparison and reporting.
type ComparisonResult struct {
	// Name is the human-readable strategy name (e.g., "Fibonacci walk").
	Name string
	// Slug is the strategy selector as accepted by the -strategy flag.
	Slug string
	// Km is the converted distance in kilometers.
	Km float32
	// Duration is the time taken to complete the conversion.
	Duration time.Duration
}

// ExecuteComparison runs every given strategy concurrently against the same
// distance and collects the per-strategy results.
//
// Each strategy runs in its own goroutine; results land in a pre-sized
// slice so no synchronization beyond the errgroup is needed.
//
// Parameters:
//   - ctx: The context for cancellation and tracing propagation.
//   - strategies: The strategies to execute.
//   - miles: The distance to convert, in miles.
//
// Returns:
//   - []ComparisonResult: One entry per strategy, in completion-independent
//     input order.
func ExecuteComparison(ctx context.Context, strategies []convert.Strategy, miles float64) []ComparisonResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ComparisonResult, len(strategies))

	for i, strat := range strategies {
		idx, strategy := i, strat
		g.Go(func() error {
			start := time.Now()
			km := strategy.Convert(ctx, miles)
			results[idx] = ComparisonResult{
				Name: strategy.Name(), Slug: strategy.Slug(), Km: km, Duration: time.Since(start),
			}
			return nil
		})
	}

	g.Wait()
	return results
}

// AnalyzeComparisonResults sorts the comparison results by execution time
// and displays a comparative table. The strategies approximate the same
// conversion differently, so the report shows each value side by side
// along with its deviation from the exact linear result.
//
// Parameters:
//   - results: The slice of comparison results to analyze.
//   - miles: The converted distance, for the report header.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: The process exit code.
func AnalyzeComparisonResults(results []ComparisonResult, miles float64, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Duration < results[j].Duration
	})

	exact := convert.LinearKm(miles)

	fmt.Fprintf(out, "\n--- Strategy Comparison: %.2f miles ---\n", miles)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sStrategy%s\t%sKilometers%s\t%sDeviation%s\t%sDuration%s\n",
		cli.ColorUnderline(), cli.ColorReset(), cli.ColorUnderline(), cli.ColorReset(),
		cli.ColorUnderline(), cli.ColorReset(), cli.ColorUnderline(), cli.ColorReset())

	for _, res := range results {
		duration := res.Duration.String()
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%.4f\t%+.4f\t%s%s%s\n",
			cli.ColorPrimary(), res.Name, cli.ColorReset(),
			res.Km, res.Km-exact,
			cli.ColorWarning(), duration, cli.ColorReset())
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	fmt.Fprintf(out, "\nExact linear reference: %.4f km\n", exact)
	return apperrors.ExitSuccess
}
