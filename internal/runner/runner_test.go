package runner

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipOnWindows skips tests that drive /bin/sh. The runner itself is
// platform-neutral; only the test fixtures shell out.
func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test fixture requires sh")
	}
}

// TestRunSuccess verifies that a zero-exit command yields OK, captures
// stdout, and prints the success glyph followed by the command's output.
func TestRunSuccess(t *testing.T) {
	skipOnWindows(t)

	var out strings.Builder
	r := &ExecRunner{Out: &out}

	res := r.Run(context.Background(), "Saying hello", "sh", "-c", "echo hello")

	require.True(t, res.OK)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Empty(t, res.Stderr)

	progress := out.String()
	assert.Contains(t, progress, "Saying hello...")
	assert.Contains(t, progress, "Running: sh -c echo hello")
	assert.Contains(t, progress, "✓ Success")
	assert.Contains(t, progress, "hello")
}

// TestRunFailure verifies that a non-zero exit yields !OK, that stderr is
// captured, and that the failure report includes the error output. No
// error value escapes — failure is only visible through the Result.
func TestRunFailure(t *testing.T) {
	skipOnWindows(t)

	var out strings.Builder
	r := &ExecRunner{Out: &out}

	res := r.Run(context.Background(), "Failing on purpose", "sh", "-c", "echo broken >&2; exit 3")

	require.False(t, res.OK)
	assert.Contains(t, res.Stderr, "broken")

	progress := out.String()
	assert.Contains(t, progress, "✗ Error:")
	assert.Contains(t, progress, "Error output: broken")
	assert.NotContains(t, progress, "✓ Success")
}

// TestRunMissingExecutable verifies that an unresolvable executable is
// reported the same way as any other failure.
func TestRunMissingExecutable(t *testing.T) {
	var out strings.Builder
	r := &ExecRunner{Out: &out}

	res := r.Run(context.Background(), "Checking missing tool", "definitely-not-a-real-binary-xyz", "--version")

	assert.False(t, res.OK)
	assert.Contains(t, out.String(), "✗ Error:")
}

// TestRunCancelledContext verifies that an already-cancelled context
// fails the invocation instead of hanging.
func TestRunCancelledContext(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	r := &ExecRunner{Out: &out}

	res := r.Run(ctx, "Sleeping", "sh", "-c", "sleep 10")
	assert.False(t, res.OK)
}

// TestCombined verifies the stream-joining helper used for version
// banners that may land on either stream.
func TestCombined(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{name: "stdout only", res: Result{Stdout: "Python 3.11.4\n"}, want: "Python 3.11.4"},
		{name: "stderr only", res: Result{Stderr: "Python 2.7.18\n"}, want: "Python 2.7.18"},
		{name: "both empty", res: Result{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.Combined())
		})
	}
}
