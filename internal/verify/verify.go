package verify

import (
	"context"

	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
	"github.com/mmr-tortoise/envup/internal/script"
)

// Run generates the verification script, writes it to ScriptName in the
// working directory, executes it with the configured Python interpreter,
// and removes the file again regardless of outcome.
func Run(ctx context.Context, r runner.Runner, pythonExec string, pythonPackages, rPackages []string) error {
	source, err := Script(pythonPackages, rPackages)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to generate verification script", err)
	}

	release, err := script.Materialize(ScriptName, source)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to write verification script", err)
	}
	defer release()

	if res := r.Run(ctx, "Verifying installation", pythonExec, ScriptName); !res.OK {
		return model.NewCLIError(model.ExitFailure, "installation verification failed")
	}
	return nil
}
