package python

import (
	"context"
	"fmt"

	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
)

// PipGuidance is the remediation text printed when the pip install step
// fails. The most common cause on modern Debian/Ubuntu systems is PEP 668
// (externally-managed-environment), so the guidance leads with that.
const PipGuidance = `
If you got an 'externally-managed-environment' error:
1. Create a virtual environment: python -m venv venv
2. Activate it: source venv/bin/activate
3. Run this script again from within the virtual environment
`

// Install performs the primary package installation: it upgrades pip
// itself, then installs every dependency declared in the manifest.
//
// Both invocations run through `<python> -m pip` so the pip that executes
// belongs to the configured interpreter, not whatever `pip` happens to be
// first on PATH.
//
// There is no per-package granularity: a single failing dependency fails
// the whole step. The step is idempotent — pip skips already-satisfied
// requirements on re-runs.
func Install(ctx context.Context, r runner.Runner, pythonExec, manifestPath string) error {
	if res := r.Run(ctx, "Upgrading pip", pythonExec, "-m", "pip", "install", "--upgrade", "pip"); !res.OK {
		return model.NewCLIError(model.ExitFailure,
			"failed to upgrade pip"+PipGuidance)
	}

	if res := r.Run(ctx, "Installing Python packages", pythonExec, "-m", "pip", "install", "-r", manifestPath); !res.OK {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("failed to install Python packages from %s", manifestPath)+PipGuidance)
	}

	return nil
}
