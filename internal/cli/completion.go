package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlags lists the flags advertised to shell completion scripts.
var completionFlags = []string{
	"-fib", "-basic", "-strategy", "-quiet", "-no-color", "-json",
	"-output", "-interactive", "-tui", "-server", "-port", "-timeout",
	"-completion", "-version",
}

// GenerateCompletion writes a completion script for the requested shell.
// Supported shells are "bash" and "zsh".
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	opts := append([]string{"all"}, strategies...)
	switch strings.ToLower(shell) {
	case "bash":
		fmt.Fprintf(out, bashCompletionTemplate, strings.Join(completionFlags, " "), strings.Join(opts, " "))
		return nil
	case "zsh":
		fmt.Fprintf(out, zshCompletionTemplate, strings.Join(completionFlags, " "), strings.Join(opts, " "))
		return nil
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
}

const bashCompletionTemplate = `# bash completion for miles2km
_miles2km() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
        -strategy)
            COMPREPLY=( $(compgen -W "%[2]s" -- "$cur") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "%[1]s" -- "$cur") )
}
complete -F _miles2km miles2km
`

const zshCompletionTemplate = `#compdef miles2km
# zsh completion for miles2km
_miles2km() {
    local -a flags strategies
    flags=(%[1]s)
    strategies=(%[2]s)

    case "$words[CURRENT-1]" in
        -strategy)
            _describe 'strategy' strategies
            return
            ;;
        -completion)
            compadd bash zsh
            return
            ;;
    esac

    _describe 'flag' flags
}
_miles2km "$@"
`
