package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsStdinTTY returns true when stdin is connected to a terminal.
func IsStdinTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Width returns the terminal width, or fallback when stdout is not a terminal.
func Width(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// DisableColor strips all styling from subsequent output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorWanted reports whether styled output is appropriate. A non-empty
// NO_COLOR or the --no-color flag turns it off.
func ColorWanted(noColorFlag bool) bool {
	return !noColorFlag && os.Getenv("NO_COLOR") == ""
}
