package rlang

import (
	"context"

	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
	"github.com/mmr-tortoise/envup/internal/script"
)

// InstallPackages generates the R installer script, writes it to
// InstallScriptName in the working directory, executes it via Rscript,
// and removes the file again. The deferred release runs on success,
// failure, and panic alike.
func InstallPackages(ctx context.Context, r runner.Runner, rscriptExec string, packages []string, repoURL string) error {
	source, err := InstallScript(packages, repoURL)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to generate R install script", err)
	}

	release, err := script.Materialize(InstallScriptName, source)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to write R install script", err)
	}
	defer release()

	if res := r.Run(ctx, "Installing R packages", rscriptExec, InstallScriptName); !res.OK {
		return model.NewCLIError(model.ExitFailure, "failed to install R packages")
	}
	return nil
}
