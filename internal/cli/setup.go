// Package cli — setup.go implements the "envup setup" command, which is
// also what a bare `envup` invocation runs.
//
// The command loads the (optional) config, validates it, and hands control
// to the setup pipeline:
//
//	env-guard → version-guard → install-primary
//	          → check-secondary-runtime → install-secondary → verify
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envup/internal/config"
	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
	"github.com/mmr-tortoise/envup/internal/setup"
)

// NewSetupCommand creates the "setup" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Run the full environment bootstrap procedure",
		Long: `Run every step of the bootstrap procedure in order:

  1. Warn (and prompt) when not inside a virtual environment
  2. Warn when the Python interpreter is below the recommended minimum
  3. Upgrade pip and install the requirements manifest
  4. Check the R runtime and install the statistical R packages
  5. Verify every package, including the rpy2 bridge

The first failing step aborts with exit code 1. Declining the
confirmation prompt exits cleanly with code 0.`,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context())
		},
	}
}

// runSetup loads configuration, builds the pipeline, and executes it.
// Shared by the root command and the explicit setup subcommand.
func runSetup(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pipeline := setup.New(cfg, runner.New())
	pipeline.AssumeYes = assumeYes

	outcome, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	// A declined prompt is a clean, non-error termination: the pipeline
	// has already printed the cancellation message, so there is nothing
	// left to do. Exit code stays 0.
	if outcome == setup.OutcomeDeclined {
		VerboseLog("setup declined at the environment guard")
	}
	return nil
}

// loadConfig discovers and validates the configuration shared by all
// subcommands. Validation failures are fatal before any subprocess runs:
// a broken package name must never reach a generated script.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFailure, "failed to get current directory", err)
	}

	cfg, err := config.Discover(cwd, configPath)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFailure, "failed to load config", err)
	}
	VerboseLog("config: python=%s r=%s rscript=%s manifest=%s",
		cfg.PythonExec, cfg.RExec, cfg.RscriptExec, cfg.Manifest)

	if problems := cfg.Validate(); len(problems) > 0 {
		// Report the first problem; the operator fixes them one at a time
		// anyway, and the message carries the exact field.
		return nil, model.WrapCLIError(model.ExitFailure, "invalid configuration", &problems[0])
	}

	return cfg, nil
}
