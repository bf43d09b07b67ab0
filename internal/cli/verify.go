// Package cli — verify.go implements the "envup verify" command: the
// final gate of the setup procedure as a standalone operation, for
// re-checking an environment that was bootstrapped earlier.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/envup/internal/runner"
	"github.com/mmr-tortoise/envup/internal/verify"
)

// NewVerifyCommand creates the "verify" cobra command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify every package without installing anything",
		Long: `Generate and run the throwaway verification script: import each
Python package and load each R package through the rpy2 bridge.
Exits 1 on the first package that fails to load.`,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := verify.Run(cmd.Context(), runner.New(), cfg.PythonExec, cfg.PythonPackages, cfg.RPackages); err != nil {
				return err
			}

			fmt.Println("\n✅ Verification passed!")
			return nil
		},
	}
}
