package rlang

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/envup/internal/model"
	"github.com/mmr-tortoise/envup/internal/runner"
)

// stubRunner returns a fixed success flag and records what it ran.
type stubRunner struct {
	ok   bool
	seen [][]string
}

func (s *stubRunner) Run(_ context.Context, _ string, name string, args ...string) runner.Result {
	s.seen = append(s.seen, append([]string{name}, args...))
	return runner.Result{OK: s.ok}
}

// TestCheckInstalled verifies the reachability probe: a working R binary
// passes, a missing one fails with guidance for all three platforms.
func TestCheckInstalled(t *testing.T) {
	t.Run("R reachable", func(t *testing.T) {
		fake := &stubRunner{ok: true}
		err := CheckInstalled(context.Background(), fake, "R")

		require.NoError(t, err)
		require.Len(t, fake.seen, 1)
		assert.Equal(t, []string{"R", "--version"}, fake.seen[0])
	})

	t.Run("R missing prints all three platforms", func(t *testing.T) {
		fake := &stubRunner{ok: false}
		err := CheckInstalled(context.Background(), fake, "R")

		require.Error(t, err)
		var cliErr *model.CLIError
		require.ErrorAs(t, err, &cliErr)
		assert.Equal(t, model.ExitFailure, cliErr.Code)

		// The guidance text is part of the contract: operators on any of
		// the three platforms must find their instructions in the output.
		assert.Contains(t, cliErr.Message, "Ubuntu/Debian: sudo apt-get install r-base")
		assert.Contains(t, cliErr.Message, "macOS: brew install r")
		assert.Contains(t, cliErr.Message, "Windows: Download from https://cran.r-project.org/")
	})
}

// TestInstallPackages verifies the side-effecting half of the install
// contract: the script is materialized for the Rscript invocation and
// removed afterwards on both the success and failure paths.
func TestInstallPackages(t *testing.T) {
	pkgs := []string{"lme4", "MASS"}
	repo := "https://cran.r-project.org/"

	t.Run("success removes the script", func(t *testing.T) {
		chdir(t, t.TempDir())

		fake := &stubRunner{ok: true}
		err := InstallPackages(context.Background(), fake, "Rscript", pkgs, repo)

		require.NoError(t, err)
		require.Len(t, fake.seen, 1)
		assert.Equal(t, []string{"Rscript", InstallScriptName}, fake.seen[0])

		_, statErr := os.Stat(InstallScriptName)
		assert.True(t, os.IsNotExist(statErr), "temp script must not outlive the step")
	})

	t.Run("failure still removes the script", func(t *testing.T) {
		chdir(t, t.TempDir())

		fake := &stubRunner{ok: false}
		err := InstallPackages(context.Background(), fake, "Rscript", pkgs, repo)

		require.Error(t, err)
		_, statErr := os.Stat(InstallScriptName)
		assert.True(t, os.IsNotExist(statErr), "temp script must not outlive the step")
	})

	t.Run("empty package list fails before any execution", func(t *testing.T) {
		chdir(t, t.TempDir())

		fake := &stubRunner{ok: true}
		err := InstallPackages(context.Background(), fake, "Rscript", nil, repo)

		require.Error(t, err)
		assert.Empty(t, fake.seen)
	})
}

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup. It stands in for
// t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
