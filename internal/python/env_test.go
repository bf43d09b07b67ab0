package python

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// clearIsolationEnv resets every variable the probe inspects, so the
// test's own environment (which may well be a venv) cannot leak in.
func clearIsolationEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VIRTUAL_ENV", "")
	t.Setenv("CONDA_PREFIX", "")
	t.Setenv("CONDA_DEFAULT_ENV", "")
}

// TestInVirtualEnv verifies the isolation probe against each supported
// activation mechanism.
func TestInVirtualEnv(t *testing.T) {
	t.Run("no isolation", func(t *testing.T) {
		clearIsolationEnv(t)
		assert.False(t, InVirtualEnv())
	})

	t.Run("virtualenv activation", func(t *testing.T) {
		clearIsolationEnv(t)
		t.Setenv("VIRTUAL_ENV", "/home/analyst/project/venv")
		assert.True(t, InVirtualEnv())
	})

	t.Run("conda prefix", func(t *testing.T) {
		clearIsolationEnv(t)
		t.Setenv("CONDA_PREFIX", "/opt/conda/envs/analysis")
		assert.True(t, InVirtualEnv())
	})

	t.Run("conda default env only", func(t *testing.T) {
		clearIsolationEnv(t)
		t.Setenv("CONDA_DEFAULT_ENV", "analysis")
		assert.True(t, InVirtualEnv())
	})
}
