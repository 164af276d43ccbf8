package utils

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive checks if we're in an interactive terminal
func IsInteractive() bool {
	// Allow forcing non-interactive mode via environment variable
	if os.Getenv("MOCOTCH_NON_INTERACTIVE") != "" {
		return false
	}

	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
