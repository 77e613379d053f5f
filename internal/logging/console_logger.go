// Package logging implements the claimload.Logger interface: a ConsoleLogger
// for operators watching a run and a NullLogger for tests and quiet mode.
package logging

import (
	"fmt"
	"os"
	"sync"
)

// ConsoleLogger writes to stderr so run output stays separable from the
// report the CLI prints on stdout. A mutex keeps lines from the loader's
// goroutines whole.
type ConsoleLogger struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. With verbose false, Verbose
// calls are dropped before formatting.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose}
}

// Verbose logs per-feed diagnostics: download sizes, checksums, row counts.
func (l *ConsoleLogger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.emit("[VERBOSE] ", format, args)
}

// Info logs run progress.
func (l *ConsoleLogger) Info(format string, args ...any) {
	l.emit("", format, args)
}

// Error logs failures.
func (l *ConsoleLogger) Error(format string, args ...any) {
	l.emit("[ERROR] ", format, args)
}

func (l *ConsoleLogger) emit(prefix, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) == 0 {
		// Pre-formatted messages may carry literal percent signs.
		fmt.Fprintln(os.Stderr, prefix+format)
		return
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}
