// Package cli — doctor.go implements the "envup doctor" command.
//
// doctor inspects the environment without changing it: no pip install, no
// Rscript execution, no temp files. It answers "would setup succeed?" by
// running only the read-only probes (interpreter versions, isolation,
// manifest contents) and prints a per-check report in text or JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/manifest"
	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/python"
	"github.com/mmr-tortoise/envup/internal/runner"
)

// NewDoctorCommand creates the "doctor" cobra command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment without installing anything",
		Long: `Check every precondition of the bootstrap procedure and report the
results. No packages are installed and no files are written.

Checks: virtual-environment isolation, Python interpreter version,
R and Rscript availability, and the requirements manifest.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

// runDoctor performs every read-only check and prints the report.
// It returns a CLIError (exit 1) when any required component is missing,
// so CI can gate on `envup doctor`.
func runDoctor(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Probe quietly: the doctor report is the output, not the runner's
	// progress stream. Redirecting Out (rather than using a different
	// runner) keeps the execution path identical to the real setup.
	quiet := &runner.ExecRunner{Out: io.Discard}

	results := []model.CheckResult{
		checkIsolation(),
		checkPython(ctx, quiet, cfg),
		checkRuntime(ctx, quiet, "r", cfg.RExec),
		checkRuntime(ctx, quiet, "rscript", cfg.RscriptExec),
		checkManifest(cfg.Manifest),
	}

	printDoctorReport(results)

	for _, res := range results {
		if res.Status == model.StatusMissing {
			return model.NewCLIError(model.ExitFailure, "environment is not ready (see report above)")
		}
	}
	return nil
}

// checkIsolation reports whether the process is inside a virtualenv or
// conda environment. Missing isolation is a warning, not a failure —
// exactly like the setup pipeline's guard.
func checkIsolation() model.CheckResult {
	if python.InVirtualEnv() {
		detail := os.Getenv("VIRTUAL_ENV")
		if detail == "" {
			detail = os.Getenv("CONDA_PREFIX")
		}
		return model.CheckResult{Name: "virtualenv", Status: model.StatusOK, Detail: detail}
	}
	return model.CheckResult{
		Name:   "virtualenv",
		Status: model.StatusWarning,
		Detail: "not running in a virtual environment",
	}
}

// checkPython probes the configured interpreter and compares its version
// against the advisory minimum.
func checkPython(ctx context.Context, r runner.Runner, cfg *config.Config) model.CheckResult {
	res := r.Run(ctx, "Checking Python version", cfg.PythonExec, "--version")
	if !res.OK {
		return model.CheckResult{
			Name:   "python",
			Status: model.StatusMissing,
			Detail: fmt.Sprintf("%s not found or not runnable", cfg.PythonExec),
		}
	}

	current, err := python.ParseVersion(res.Combined())
	if err != nil {
		return model.CheckResult{
			Name:   "python",
			Status: model.StatusWarning,
			Detail: fmt.Sprintf("unrecognized version output %q", res.Combined()),
		}
	}

	min, err := python.ParseVersion(cfg.MinPythonVersion)
	if err == nil && current.Less(min) {
		return model.CheckResult{
			Name:   "python",
			Status: model.StatusWarning,
			Detail: fmt.Sprintf("%s (below recommended %s)", current, cfg.MinPythonVersion),
		}
	}

	return model.CheckResult{Name: "python", Status: model.StatusOK, Detail: current.String()}
}

// checkRuntime probes an executable with --version and reports
// reachability. Used for both R and Rscript.
func checkRuntime(ctx context.Context, r runner.Runner, name, exe string) model.CheckResult {
	res := r.Run(ctx, "Checking "+name+" version", exe, "--version")
	if !res.OK {
		return model.CheckResult{
			Name:   name,
			Status: model.StatusMissing,
			Detail: fmt.Sprintf("%s not found in PATH", exe),
		}
	}

	// Report only the banner line; R's --version output runs several
	// lines of license text.
	detail := res.Combined()
	if idx := indexNewline(detail); idx >= 0 {
		detail = detail[:idx]
	}
	return model.CheckResult{Name: name, Status: model.StatusOK, Detail: detail}
}

// checkManifest parses the requirements file and reports how many
// packages it declares.
func checkManifest(path string) model.CheckResult {
	specs, err := manifest.Load(path)
	if err != nil {
		// Parse errors and absence are both fatal for the install step,
		// so both report as missing.
		return model.CheckResult{Name: "manifest", Status: model.StatusMissing, Detail: err.Error()}
	}
	return model.CheckResult{
		Name:   "manifest",
		Status: model.StatusOK,
		Detail: fmt.Sprintf("%s: %d packages declared", path, len(specs)),
	}
}

// printDoctorReport outputs the check results in text or JSON format.
func printDoctorReport(results []model.CheckResult) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, res := range results {
		fmt.Printf("%s %-11s %s\n", res.Status.Glyph(), res.Name, res.Detail)
	}
}

// indexNewline returns the index of the first newline in s, or -1.
func indexNewline(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}
