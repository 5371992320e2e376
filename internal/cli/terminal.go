package cli

import (
	"os"

	"golang.org/x/term"
)

// isInteractive reports whether prompts can be shown: both ends of the
// conversation must be a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// spinnerCharSet selects the spinner frames for the terminal.
// Unicode: braille dots (set 14). ASCII fallback: | / - \ (set 9), chosen
// when CLOG_ASCII=1 or stderr is not a terminal.
func spinnerCharSet() int {
	if os.Getenv("CLOG_ASCII") == "1" || !term.IsTerminal(int(os.Stderr.Fd())) {
		return 9
	}
	return 14
}
