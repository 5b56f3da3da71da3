// Package config provides the configuration management for the miles2km
// application. It defines the configuration data structure, handles the
// parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by
	// miles2km. Environment variables provide an alternative to CLI flags,
	// following the 12-Factor App methodology.
	EnvPrefix = "MILES2KM_"
)

// Default configuration values. These can be overridden via command-line
// flags or environment variables.
const (
	// DefaultStrategy is the default conversion strategy.
	DefaultStrategy = "linear"
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultTimeout bounds server requests and the comparison mode.
	DefaultTimeout = 30 * time.Second
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the distance to convert to the selected strategy and
// output mode.
type AppConfig struct {
	// Fib is the distance in miles for the integer Fibonacci path
	// (--fib). Valid values are 1..93 inclusive.
	Fib int64
	// FibSet records whether --fib was supplied.
	FibSet bool
	// Basic is the distance in miles for the numeric path (--basic).
	Basic float64
	// BasicSet records whether --basic was supplied.
	BasicSet bool
	// Strategy selects the conversion strategy ("linear", "walk",
	// "cached", "golden" or "all" for a comparison run).
	Strategy string
	// Positionals are the bare distance arguments left after flag parsing.
	Positionals []string
	// Verbose, if true, lowers the log level to debug.
	Verbose bool
	// Quiet mode - minimal output for scripting purposes.
	Quiet bool
	// NoColor disables all color output; also respects NO_COLOR.
	NoColor bool
	// JSONOutput, if true, outputs conversion results in JSON format.
	JSONOutput bool
	// OutputFile, if specified, saves the result report to this path.
	OutputFile string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// TUI, if true, launches the interactive dashboard.
	TUI bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Timeout bounds server requests and the comparison mode.
	Timeout time.Duration
	// Completion, if set, generates a shell completion script for the
	// specified shell ("bash" or "zsh").
	Completion string
}

// Validate checks the semantic consistency of the configuration. It
// enforces the CLI contract: --fib and --basic are mutually exclusive,
// --fib is bounded by the overflow-free Fibonacci range, and the selected
// strategy must be registered.
//
// Parameters:
//   - availableStrategies: The valid strategy slugs (e.g., ["linear", "walk"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableStrategies []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.FibSet && c.BasicSet {
		return apperrors.NewConfigError("cannot use both --fib and --basic options simultaneously")
	}
	if c.FibSet {
		if c.Fib <= 0 {
			return apperrors.NewConfigError("invalid distance value '%d': must be a positive integer", c.Fib)
		}
		if c.Fib > convert.MaxFibUint64 {
			return apperrors.NewConfigError("distance too large: maximum supported value is %d miles", convert.MaxFibUint64)
		}
	}
	if c.BasicSet && c.Basic < 0 {
		return apperrors.NewConfigError("invalid distance value '%g': must be a non-negative number", c.Basic)
	}

	isAvailable := false
	for _, s := range availableStrategies {
		if s == c.Strategy {
			isAvailable = true
			break
		}
	}
	if c.Strategy != "all" && !isAvailable {
		return apperrors.NewConfigError("unrecognized strategy: '%s'. Valid strategies are: 'all' or [%s]",
			c.Strategy, strings.Join(availableStrategies, ", "))
	}
	return nil
}

// HasWork reports whether the configuration requests any conversion or
// mode. When false, the CLI prints help and exits successfully.
func (c AppConfig) HasWork() bool {
	return c.FibSet || c.BasicSet || len(c.Positionals) > 0 ||
		c.Interactive || c.TUI || c.ServerMode || c.Completion != ""
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// applies environment variable overrides, and validates the result.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableStrategies: The valid strategy slugs for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	defineFlags(fs, &config, availableStrategies)
	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	config.FibSet = isFlagSetAny(fs, "fib", "f")
	config.BasicSet = isFlagSetAny(fs, "basic", "b")
	config.Positionals = fs.Args()

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Strategy = strings.ToLower(config.Strategy)
	if err := config.Validate(availableStrategies); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

// defineFlags registers every command-line flag on the given flag set,
// binding values into config.
func defineFlags(fs *flag.FlagSet, config *AppConfig, availableStrategies []string) {
	strategyHelp := fmt.Sprintf("Conversion strategy: 'all' or one of [%s].", strings.Join(availableStrategies, ", "))

	fs.Int64Var(&config.Fib, "fib", 0, "Convert miles to km using Fibonacci (1-93 miles).")
	fs.Int64Var(&config.Fib, "f", 0, "Alias for -fib.")
	fs.Float64Var(&config.Basic, "basic", 0, "Convert miles to km using the standard formula.")
	fs.Float64Var(&config.Basic, "b", 0, "Alias for -basic.")
	fs.StringVar(&config.Strategy, "strategy", DefaultStrategy, strategyHelp)
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result report.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for server requests and comparisons.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh).")
}

// PrintUsage writes the full usage message to out. It is used when the
// program is invoked without any work to do.
func PrintUsage(programName string, out io.Writer, availableStrategies []string) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(out)
	defineFlags(fs, &AppConfig{}, availableStrategies)
	setCustomUsage(fs)
	fs.Usage()
}
