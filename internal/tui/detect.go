package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode says whether the run gets the live progress display or plain log
// lines. Cron jobs, CI pipelines, and anything piped through tee must see
// plain lines; spinners in a captured log are garbage.
type Mode int

const (
	ModeNonInteractive Mode = iota
	ModeInteractive
)

// DetectMode picks the display mode. The environment can force plain
// output (CLAIMLOAD_NON_INTERACTIVE=1, any CI value, any NO_COLOR value);
// otherwise both stdin and stdout must be terminals, since the progress
// display reads key presses and repaints lines in place.
func DetectMode() Mode {
	switch {
	case os.Getenv("CLAIMLOAD_NON_INTERACTIVE") == "1",
		os.Getenv("CI") != "",
		os.Getenv("NO_COLOR") != "":
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether the live display will be used.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
