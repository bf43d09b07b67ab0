// Package runner provides synchronous execution of external commands with
// console status reporting.
//
// Every external tool envup drives (pip, R, Rscript, the Python
// interpreter) goes through a Runner. The Runner converts subprocess
// failures into a plain success flag — no error ever crosses a step
// boundary as an exception-equivalent; callers branch on Result.OK.
//
// Runner is an interface so that the setup pipeline and the installers can
// be tested with fake implementations instead of spawning real processes.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the outcome of a single command invocation.
// It is constructed immediately after the process exits and is not
// retained anywhere — results are printed and discarded.
type Result struct {
	// OK is true when the process exited with status zero.
	OK bool

	// Stdout is the captured standard output, verbatim.
	Stdout string

	// Stderr is the captured standard error, verbatim.
	Stderr string
}

// Runner executes an external command described by an argument vector and
// a human-readable description, blocking until the process exits.
type Runner interface {
	Run(ctx context.Context, description string, name string, args ...string) Result
}

// ExecRunner is the real Runner implementation backed by os/exec.
//
// Progress text is written to Out on every invocation; this output is part
// of the user-facing contract and is never suppressed by the CLI. Tests
// (and the doctor command, which probes quietly) redirect Out instead.
type ExecRunner struct {
	// Out receives the progress text. Defaults to os.Stdout when nil.
	Out io.Writer
}

// New returns an ExecRunner reporting progress to stdout.
func New() *ExecRunner {
	return &ExecRunner{Out: os.Stdout}
}

// Run executes the command synchronously and reports its outcome.
//
// The console protocol mirrors what operators expect from setup logs:
//
//	<description>...
//	Running: <argv>
//	✓ Success            (followed by captured stdout, if any)
//
// or, on a non-zero exit:
//
//	✗ Error: <exit error>
//	Error output: <captured stderr>
//
// The process's stdout and stderr are captured separately so that stderr
// can be surfaced in the failure report while stdout is echoed on success.
func (r *ExecRunner) Run(ctx context.Context, description string, name string, args ...string) Result {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "\n%s...\n", description)
	fmt.Fprintf(out, "Running: %s\n", strings.Join(append([]string{name}, args...), " "))

	// #nosec G204 — argv is constructed internally, not from user input
	cmd := exec.CommandContext(ctx, name, args...)

	// Capture stdout and stderr separately so we can echo stdout on
	// success and include stderr in error messages.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		fmt.Fprintf(out, "✗ Error: %v\n", err)
		if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
			fmt.Fprintf(out, "Error output: %s\n", errOut)
		}
		return result
	}

	result.OK = true
	fmt.Fprintln(out, "✓ Success")
	if result.Stdout != "" {
		fmt.Fprint(out, result.Stdout)
		if !strings.HasSuffix(result.Stdout, "\n") {
			fmt.Fprintln(out)
		}
	}
	return result
}

// Combined returns stdout and stderr joined, trimmed of trailing space.
// Useful for parsing tool output that may land on either stream
// (python2 printed --version to stderr; python3 prints it to stdout).
func (res Result) Combined() string {
	return strings.TrimSpace(res.Stdout + res.Stderr)
}
