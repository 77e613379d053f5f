package logging

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn and returns everything it wrote to stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestConsoleLogger_Prefixes(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewConsoleLogger(true)
		l.Info("Run %d started", 7)
		l.Verbose("Downloaded %s (%d bytes)", "claims.csv", 2048)
		l.Error("Failed to mark run %d as FAILED", 7)
	})

	assert.Equal(t,
		"Run 7 started\n"+
			"[VERBOSE] Downloaded claims.csv (2048 bytes)\n"+
			"[ERROR] Failed to mark run 7 as FAILED\n",
		out)
}

func TestConsoleLogger_VerboseSuppressedByDefault(t *testing.T) {
	out := captureStderr(t, func() {
		NewConsoleLogger(false).Verbose("Downloaded %s", "providers.csv")
	})
	assert.Empty(t, out)
}

func TestConsoleLogger_LiteralPercentWithoutArgs(t *testing.T) {
	// Messages assembled upstream can carry percent signs; without args
	// they must come through verbatim, not as MISSING verbs.
	out := captureStderr(t, func() {
		NewConsoleLogger(false).Info("Coverage at 97% of claims")
	})
	assert.Equal(t, "Coverage at 97% of claims\n", out)
}

func TestConsoleLogger_ConcurrentLinesStayWhole(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewConsoleLogger(true)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				l.Info("loaded table %d", id)
				l.Verbose("counted table %d", id)
				l.Error("rejected table %d", id)
			}(i)
		}
		wg.Wait()
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 30)
	for _, line := range lines {
		assert.Contains(t, line, "table")
	}
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewNullLogger()
		l.Verbose("v")
		l.Info("i")
		l.Error("e")
	})
	assert.Empty(t, out)
}
