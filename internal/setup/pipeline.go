// Package setup implements the top-level orchestrator of the bootstrap
// procedure as a strictly linear state machine:
//
//	start → env-guard → version-guard → install-primary
//	      → check-secondary-runtime → install-secondary → verify → done
//
// Each step gates the next. The environment guard can end the run cleanly
// (the operator declined), the version guard only ever warns, and every
// remaining step is fatal-on-failure: the first failing step short-circuits
// the rest and the process exits 1.
//
// All collaborators — the command runner, the isolation probe, the
// confirmation prompt, and the output writer — are injectable fields, so
// the full gate ordering is testable without spawning a single process.
package setup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/python"
	"github.com/mmr-tortoise/envup/internal/rlang"
	"github.com/mmr-tortoise/envup/internal/runner"
	"github.com/mmr-tortoise/envup/internal/verify"
)

// Outcome is the terminal state of a pipeline run that did not fail.
type Outcome string

const (
	// OutcomeCompleted means every step ran and verification passed.
	OutcomeCompleted Outcome = "completed"

	// OutcomeDeclined means the operator answered the environment-guard
	// prompt with anything other than an affirmative "y". This is a
	// clean, non-error termination (exit code 0).
	OutcomeDeclined Outcome = "declined"
)

// ConfirmFunc asks the operator a yes/no question and reports whether the
// answer was affirmative.
type ConfirmFunc func(prompt string) bool

// Pipeline drives the bootstrap procedure. Construct with New and
// override fields before Run to inject fakes in tests.
type Pipeline struct {
	// Config carries the toolchain settings (executables, manifest path,
	// package lists, CRAN repo).
	Config *config.Config

	// Runner executes every external command.
	Runner runner.Runner

	// IsIsolated is the environment-guard probe. Defaults to
	// python.InVirtualEnv.
	IsIsolated python.IsolationProbe

	// Confirm prompts the operator when the guard finds no isolation.
	// Defaults to reading os.Stdin.
	Confirm ConfirmFunc

	// AssumeYes skips the confirmation prompt (for CI and scripted
	// runs). The isolation warning is still printed.
	AssumeYes bool

	// Out receives banners and step headers. Defaults to os.Stdout.
	Out io.Writer
}

// New creates a Pipeline wired for interactive use.
func New(cfg *config.Config, r runner.Runner) *Pipeline {
	return &Pipeline{
		Config:     cfg,
		Runner:     r,
		IsIsolated: python.InVirtualEnv,
		Confirm:    TerminalConfirm(os.Stdin, os.Stdout),
		Out:        os.Stdout,
	}
}

// TerminalConfirm returns a ConfirmFunc that writes the prompt to out and
// reads one line from in. Only an answer of exactly "y" (case-insensitive,
// surrounding whitespace ignored) counts as affirmative — "yes" declines,
// matching the conservative default of the original prompt.
func TerminalConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			// EOF or closed stdin: treat as a decline, never as consent.
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}

// Run executes the whole procedure. It returns the terminal Outcome, or
// an error (always a *model.CLIError from the failing step) when a fatal
// gate failed. Declining the prompt is not an error.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "🚀 Setting up Longitudinal Analysis Environment")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	// --- env-guard -------------------------------------------------
	if !p.IsIsolated() {
		fmt.Fprintf(out, "%s\n", python.VirtualEnvGuidance)
		if p.AssumeYes {
			fmt.Fprintln(out, "Continuing without confirmation (--yes).")
		} else if !p.Confirm("Continue anyway? (y/N): ") {
			fmt.Fprintln(out, "Setup cancelled. Please create a virtual environment first.")
			return OutcomeDeclined, nil
		}
	}

	// --- version-guard (advisory only, never blocks) ---------------
	min, err := python.ParseVersion(p.Config.MinPythonVersion)
	if err != nil {
		// An unparseable minimum in the config degrades to "no guard"
		// rather than blocking setup over an advisory check.
		fmt.Fprintf(out, "⚠️  Warning: invalid minPythonVersion %q in config, skipping version check\n", p.Config.MinPythonVersion)
	} else if warning := python.VersionWarning(ctx, p.Runner, p.Config.PythonExec, min); warning != "" {
		fmt.Fprintf(out, "⚠️  Warning: %s\n", warning)
	}

	// --- install-primary --------------------------------------------
	fmt.Fprintln(out, "\n=== Installing Python Packages ===")
	if err := python.Install(ctx, p.Runner, p.Config.PythonExec, p.Config.Manifest); err != nil {
		fmt.Fprintln(out, "❌ Failed to install Python packages")
		return "", err
	}

	// --- check-secondary-runtime ------------------------------------
	fmt.Fprintln(out, "\n=== Checking R Installation ===")
	if err := rlang.CheckInstalled(ctx, p.Runner, p.Config.RExec); err != nil {
		fmt.Fprintln(out, "❌ R installation required")
		return "", err
	}

	// --- install-secondary -------------------------------------------
	fmt.Fprintln(out, "\n=== Installing R Packages ===")
	if err := rlang.InstallPackages(ctx, p.Runner, p.Config.RscriptExec, p.Config.RPackages, p.Config.CRANRepo); err != nil {
		fmt.Fprintln(out, "❌ Failed to install R packages")
		return "", err
	}

	// --- verify -------------------------------------------------------
	fmt.Fprintln(out, "\n=== Verifying Installation ===")
	if err := verify.Run(ctx, p.Runner, p.Config.PythonExec, p.Config.PythonPackages, p.Config.RPackages); err != nil {
		fmt.Fprintln(out, "❌ Installation verification failed")
		return "", err
	}

	fmt.Fprintln(out, "\n✅ Environment setup complete!")
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Activate your virtual environment if using one")
	fmt.Fprintln(out, "2. Run the analysis scripts in order from the scripts/ directory")
	fmt.Fprintln(out, "3. Start with: python scripts/01_load_and_validate.py")

	return OutcomeCompleted, nil
}
