package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/todolor/internal/testutil"
)

// testNow is 2023-11-14 22:13:20 UTC.
const testNow = int64(1_700_000_000_000)

type cliResult struct {
	Stdout string
	Stderr string
	Code   int
}

// runCLI executes the CLI against dir with a frozen clock, UTC and no color.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	opts := &RootOptions{
		Clock:    testutil.NewFixedClockMillis(testNow),
		Location: time.UTC,
	}
	var stdout, stderr bytes.Buffer
	full := append([]string{"--dir", dir, "--no-color"}, args...)
	code := run(opts, full, &stdout, &stderr)
	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}
}

// mustRun runs the CLI and requires success.
func mustRun(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()
	res := runCLI(t, dir, args...)
	require.Equal(t, ExitSuccess, res.Code, "stdout=%q stderr=%q", res.Stdout, res.Stderr)
	return res
}

// seedTasks creates one overdue, one upcoming and one completed task.
func seedTasks(t *testing.T, dir string) {
	t.Helper()
	mustRun(t, dir, "add", "--name", "Buy milk", "--desc", "2 litres", "--deadline", "2023-11-14 10:00:00")
	mustRun(t, dir, "add", "--name", "Write report", "--deadline", "2023-11-20 09:00:00")
	mustRun(t, dir, "add", "--name", "Call mom")
	mustRun(t, dir, "complete", "2")
}
