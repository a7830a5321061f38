package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isStdoutTTY returns true if stdout is connected to a terminal.
func isStdoutTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// resolveColor determines whether to use color output based on flags and TTY status.
// colorFlag is the --color value: "auto", "always", or "never".
// noColorFlag is the --no-color boolean flag. NO_COLOR in the environment
// turns "auto" off.
func resolveColor(colorFlag string, noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isStdoutTTY()
	}
}
