package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
	"github.com/alexeev-prog/fib-miles2km/internal/service"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result report (empty for none).
	OutputFile string
	// Quiet mode prints the bare kilometer value only.
	Quiet bool
	// JSONOutput prints the result as a JSON object.
	JSONOutput bool
}

// DisplayFibResult prints the integer Fibonacci path result. The kilometer
// value is an unsigned integer by contract.
func DisplayFibResult(out io.Writer, miles int64, km uint64) {
	fmt.Fprintf(out, "%d miles = %d km (using Fibonacci)\n", miles, km)
}

// DisplayResult prints a numeric conversion result with two-decimal fixed
// formatting.
func DisplayResult(out io.Writer, miles float64, km float32) {
	fmt.Fprintf(out, "%.2f miles = %.2f km\n", miles, km)
}

// DisplayQuietResult prints the bare kilometer value, suitable for
// scripting.
func DisplayQuietResult(out io.Writer, km float32) {
	fmt.Fprintf(out, "%.2f\n", km)
}

// DisplayJSONResult prints the result as a single-line JSON object.
func DisplayJSONResult(out io.Writer, res service.Result) error {
	enc := json.NewEncoder(out)
	return enc.Encode(res)
}

// DisplayResultWithConfig displays a result honoring the output
// configuration, and writes the file report when requested.
func DisplayResultWithConfig(out io.Writer, res service.Result, cfg OutputConfig) error {
	switch {
	case cfg.JSONOutput:
		if err := DisplayJSONResult(out, res); err != nil {
			return err
		}
	case cfg.Quiet:
		DisplayQuietResult(out, res.Km)
	default:
		DisplayResult(out, res.Miles, res.Km)
	}
	return WriteResultToFile(res, cfg)
}

// WriteResultToFile writes a conversion result report to the configured
// file. It is a no-op when no output file is set.
func WriteResultToFile(res service.Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Distance Conversion Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", res.Strategy)
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%.2f miles = %.2f km\n", res.Miles, res.Km)
	return nil
}

// ConvertBatch converts a list of raw positional distance values with the
// given strategy. Invalid or negative values are reported to errWriter and
// skipped; the remaining values are still converted, and the batch as a
// whole succeeds. Large batches show a progress spinner unless quiet.
//
// Parameters:
//   - ctx: The context for tracing propagation.
//   - strat: The conversion strategy to apply.
//   - values: The raw distance arguments.
//   - out: The writer for conversion results.
//   - errWriter: The writer for per-value error messages.
//   - cfg: Output configuration (quiet suppresses the spinner).
//
// Returns:
//   - int: The process exit code (always success per the CLI contract).
func ConvertBatch(ctx context.Context, strat convert.Strategy, values []string, out, errWriter io.Writer, cfg OutputConfig) int {
	var spin ProgressSpinner = noopSpinner{}
	if len(values) >= BatchSpinnerThreshold && !cfg.Quiet {
		spin = newSpinner(errWriter, fmt.Sprintf(" converting %d values...", len(values)))
	}
	spin.Start()
	defer spin.Stop()

	for _, raw := range values {
		miles, err := strconv.ParseFloat(raw, 64)
		if err != nil || miles < 0 {
			fmt.Fprintf(errWriter, "Error: Invalid distance value '%s'. Skipping.\n", raw)
			continue
		}

		km := strat.Convert(ctx, miles)
		if cfg.Quiet {
			DisplayQuietResult(out, km)
		} else {
			DisplayResult(out, miles, km)
		}
	}
	return apperrors.ExitSuccess
}
