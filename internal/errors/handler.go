package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with the cli package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleRunError formats and prints error messages for a failed run,
// distinguishing timeout, cancellation, configuration and generic failures
// to give the user specific feedback.
//
// Parameters:
//   - err: The error that occurred.
//   - out: The io.Writer to which the message will be written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleRunError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached.\n")
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sStatus: Canceled.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	}

	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(out, "Configuration error: %v\n", cfgErr)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
