package rlang

import (
	"context"

	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
)

// InstallGuidance is the remediation text printed when the R runtime is
// not reachable. All three platforms are listed unconditionally — the
// operator may be preparing instructions for a machine other than the one
// running envup.
const InstallGuidance = `⚠️  R is not installed or not in PATH
Please install R first:
  - Ubuntu/Debian: sudo apt-get install r-base
  - macOS: brew install r
  - Windows: Download from https://cran.r-project.org/
`

// CheckInstalled verifies that the R runtime is reachable by running
// `R --version`. PATH resolution is the only discovery mechanism; envup
// reads no R-specific environment variables.
//
// On failure it returns a CLIError whose message carries the full
// platform guidance, so the CLI's error path prints actionable text.
func CheckInstalled(ctx context.Context, r runner.Runner, rExec string) error {
	if res := r.Run(ctx, "Checking R version", rExec, "--version"); !res.OK {
		return model.NewCLIError(model.ExitFailure, "R installation required\n"+InstallGuidance)
	}
	return nil
}
