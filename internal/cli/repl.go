package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alexeev-prog/fib-miles2km/internal/service"
)

// REPL represents an interactive conversion session. Distances are read
// line by line and converted with the currently selected strategy.
type REPL struct {
	svc             service.Service
	currentStrategy string
	in              io.Reader
	out             io.Writer
}

// NewREPL creates a new REPL instance using the given service. When the
// default strategy is empty or "all", the first available strategy is
// selected.
func NewREPL(svc service.Service, defaultStrategy string) *REPL {
	current := defaultStrategy
	if current == "" || current == "all" {
		if strategies := svc.Strategies(); len(strategies) > 0 {
			current = strategies[0]
		}
	}

	return &REPL{
		svc:             svc,
		currentStrategy: current,
		in:              os.Stdin,
		out:             os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input
// and processes commands until the user exits or EOF is reached.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()

	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprintf(r.out, "%smiles2km [%s]>%s ", ColorPrimary(), r.currentStrategy, ColorReset())
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !r.handleLine(ctx, line) {
			return
		}
	}
}

// handleLine processes one input line. It returns false when the session
// should end.
func (r *REPL) handleLine(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		fmt.Fprintln(r.out, "Goodbye.")
		return false
	case "help":
		r.printHelp()
		return true
	case "strategies":
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.svc.Strategies(), ", "))
		return true
	case "strategy":
		if len(fields) < 2 {
			fmt.Fprintf(r.out, "Current strategy: %s\n", r.currentStrategy)
			return true
		}
		r.switchStrategy(strings.ToLower(fields[1]))
		return true
	}

	miles, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: Invalid distance value '%s'.%s Type 'help' for commands.\n", ColorError(), fields[0], ColorReset())
		return true
	}

	res, err := r.svc.Convert(ctx, miles, r.currentStrategy)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorError(), err, ColorReset())
		return true
	}
	DisplayResult(r.out, res.Miles, res.Km)
	return true
}

func (r *REPL) switchStrategy(slug string) {
	for _, s := range r.svc.Strategies() {
		if s == slug {
			r.currentStrategy = slug
			fmt.Fprintf(r.out, "Switched to strategy: %s\n", slug)
			return
		}
	}
	fmt.Fprintf(r.out, "%sUnknown strategy '%s'.%s Available: %s\n",
		ColorError(), slug, ColorReset(), strings.Join(r.svc.Strategies(), ", "))
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "%sDistance Converter%s - interactive mode\n", ColorPrimary(), ColorReset())
	fmt.Fprintln(r.out, "Enter a distance in miles, or type 'help' for commands.")
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  <number>         Convert a distance in miles to kilometers")
	fmt.Fprintln(r.out, "  strategy [name]  Show or switch the conversion strategy")
	fmt.Fprintln(r.out, "  strategies       List available strategies")
	fmt.Fprintln(r.out, "  help             Show this help")
	fmt.Fprintln(r.out, "  quit             Exit the session")
}
