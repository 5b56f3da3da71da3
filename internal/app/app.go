package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/alexeev-prog/fib-miles2km/internal/cli"
	"github.com/alexeev-prog/fib-miles2km/internal/config"
	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
	"github.com/alexeev-prog/fib-miles2km/internal/orchestration"
	"github.com/alexeev-prog/fib-miles2km/internal/server"
	"github.com/alexeev-prog/fib-miles2km/internal/service"
	"github.com/alexeev-prog/fib-miles2km/internal/tui"
	"github.com/alexeev-prog/fib-miles2km/internal/ui"
)

// Application represents the miles2km application instance.
type Application struct {
	Config      config.AppConfig
	Factory     convert.Factory
	ErrWriter   io.Writer
	programName string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom strategy factory for the application.
func WithFactory(f convert.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, programName: "miles2km"}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = convert.NewDefaultFactory()
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	if a.Config.Interactive {
		return a.runREPL(ctx)
	}

	if !a.Config.HasWork() {
		config.PrintUsage(a.programName, out, a.Factory.List())
		return apperrors.ExitSuccess
	}

	return a.runConvert(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer starts the HTTP API and blocks until shutdown.
func (a *Application) runServer() int {
	timeouts := server.DefaultServerTimeouts()
	timeouts.RequestTimeout = a.Config.Timeout

	srv := server.NewServer(a.Factory, a.Config, server.WithTimeouts(timeouts))
	if err := srv.Start(); err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard. The session has no timeout;
// it ends on quit or termination signal.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Factory)
}

// runREPL starts the interactive line-oriented session.
func (a *Application) runREPL(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	svc := service.NewConverterService(a.Factory)
	repl := cli.NewREPL(svc, a.Config.Strategy)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runConvert dispatches the one-shot conversion paths: the integer
// Fibonacci path, the numeric path and the positional batch.
func (a *Application) runConvert(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	svc := service.NewConverterService(a.Factory)
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		JSONOutput: a.Config.JSONOutput,
	}

	if a.Config.FibSet {
		km, err := svc.FibKilometers(a.Config.Fib)
		if err != nil {
			return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
		cli.DisplayFibResult(out, a.Config.Fib, km)
		return apperrors.ExitSuccess
	}

	if a.Config.BasicSet {
		if a.Config.Strategy == "all" {
			return a.runComparison(ctx, a.Config.Basic, out)
		}
		res, err := svc.Convert(ctx, a.Config.Basic, a.Config.Strategy)
		if err != nil {
			return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
		if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
			return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
		}
		return apperrors.ExitSuccess
	}

	if a.Config.Strategy == "all" {
		return a.runPositionalComparisons(ctx, out)
	}

	strat, err := a.Factory.Get(a.Config.Strategy)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, cli.CLIColorProvider{})
	}
	return cli.ConvertBatch(ctx, strat, a.Config.Positionals, out, a.ErrWriter, outputCfg)
}

// runComparison executes every registered strategy against one distance
// and prints the comparison table.
func (a *Application) runComparison(ctx context.Context, miles float64, out io.Writer) int {
	all := a.Factory.GetAll()
	strategies := make([]convert.Strategy, 0, len(all))
	for _, slug := range a.Factory.List() {
		strategies = append(strategies, all[slug])
	}

	results := orchestration.ExecuteComparison(ctx, strategies, miles)
	return orchestration.AnalyzeComparisonResults(results, miles, out)
}

// runPositionalComparisons runs the comparison mode once per positional
// distance, skipping invalid values the same way the batch path does.
func (a *Application) runPositionalComparisons(ctx context.Context, out io.Writer) int {
	for _, raw := range a.Config.Positionals {
		miles, err := strconv.ParseFloat(raw, 64)
		if err != nil || miles < 0 {
			fmt.Fprintf(a.ErrWriter, "Error: Invalid distance value '%s'. Skipping.\n", raw)
			continue
		}
		if code := a.runComparison(ctx, miles, out); code != apperrors.ExitSuccess {
			return code
		}
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
