// Package cli provides the command-line presentation layer: result
// formatting, batch conversion with per-value error reporting, progress
// display for large batches, the interactive REPL and shell completion.
package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/alexeev-prog/fib-miles2km/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the batch
	// progress spinner.
	ProgressRefreshRate = 100 * time.Millisecond
	// BatchSpinnerThreshold is the number of batch values from which a
	// progress spinner is shown. Below it the spinner would only flicker.
	BatchSpinnerThreshold = 64
)

// Color functions return ANSI escape codes from the current theme. They
// delegate to the ui package to reduce coupling.

// ColorReset returns the reset escape code from the current theme.
func ColorReset() string { return ui.GetCurrentTheme().Reset }

// ColorPrimary returns the primary accent color from the current theme.
func ColorPrimary() string { return ui.GetCurrentTheme().Primary }

// ColorSuccess returns the success color from the current theme.
func ColorSuccess() string { return ui.GetCurrentTheme().Success }

// ColorWarning returns the warning color from the current theme.
func ColorWarning() string { return ui.GetCurrentTheme().Warning }

// ColorError returns the error color from the current theme.
func ColorError() string { return ui.GetCurrentTheme().Error }

// ColorUnderline returns the underline escape code from the current theme.
func ColorUnderline() string { return ui.GetCurrentTheme().Underline }

// CLIColorProvider adapts the theme to the apperrors.ColorProvider
// interface without introducing an import cycle.
type CLIColorProvider struct{}

// Yellow returns the warning color of the active theme.
func (CLIColorProvider) Yellow() string { return ui.GetCurrentTheme().Warning }

// Reset returns the reset code of the active theme.
func (CLIColorProvider) Reset() string { return ui.GetCurrentTheme().Reset }

// ProgressSpinner abstracts the terminal spinner so batch conversion can be
// tested without a TTY.
type ProgressSpinner interface {
	Start()
	Stop()
}

type realSpinner struct {
	s *spinner.Spinner
}

func (r *realSpinner) Start() { r.s.Start() }
func (r *realSpinner) Stop()  { r.s.Stop() }

// noopSpinner is used in quiet mode and in tests.
type noopSpinner struct{}

func (noopSpinner) Start() {}
func (noopSpinner) Stop()  {}

// newSpinner creates a spinner writing to w with the standard charset and
// refresh rate.
func newSpinner(w io.Writer, suffix string) ProgressSpinner {
	s := spinner.New(spinner.CharSets[14], ProgressRefreshRate, spinner.WithWriter(w))
	s.Suffix = suffix
	return &realSpinner{s: s}
}
