package rlang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInstallScript verifies the generated R source: the declared vector,
// the set-difference against installed.packages(), the CRAN repo, and the
// per-package load loop. The generation is pure, so these assertions pin
// the contract of what Rscript will execute.
func TestInstallScript(t *testing.T) {
	src, err := InstallScript(
		[]string{"lme4", "lmerTest", "emmeans", "MASS"},
		"https://cran.r-project.org/",
	)
	require.NoError(t, err)

	// The declared package vector, in order.
	assert.Contains(t, src, `packages <- c("lme4", "lmerTest", "emmeans", "MASS")`)

	// Only missing packages are installed: the set difference guards the
	// install.packages call, so a fully-provisioned library performs
	// zero install actions.
	assert.Contains(t, src, `missing_packages <- packages[!(packages %in% installed.packages()[,"Package"])]`)
	assert.Contains(t, src, `if(length(missing_packages) > 0)`)
	assert.Contains(t, src, `install.packages(missing_packages, repos="https://cran.r-project.org/")`)
	assert.Contains(t, src, `All R packages are already installed`)

	// Every declared package is loaded regardless of whether anything
	// was installed, and each load is reported.
	assert.Contains(t, src, `library(pkg, character.only=TRUE)`)
	assert.Contains(t, src, `cat("✓", pkg, "loaded successfully\n")`)
}

// TestInstallScriptDeterministic verifies that generation is a pure
// function: identical inputs produce identical source.
func TestInstallScriptDeterministic(t *testing.T) {
	pkgs := []string{"lme4", "MASS"}
	a, err := InstallScript(pkgs, "https://cran.example.org/")
	require.NoError(t, err)
	b, err := InstallScript(pkgs, "https://cran.example.org/")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestInstallScriptSingle verifies a one-element vector renders without a
// trailing separator.
func TestInstallScriptSingle(t *testing.T) {
	src, err := InstallScript([]string{"MASS"}, "https://cran.r-project.org/")
	require.NoError(t, err)
	assert.Contains(t, src, `packages <- c("MASS")`)
	assert.False(t, strings.Contains(src, `c("MASS", )`))
}

// TestInstallScriptEmpty verifies that an empty package list is rejected
// rather than silently generating a no-op script.
func TestInstallScriptEmpty(t *testing.T) {
	_, err := InstallScript(nil, "https://cran.r-project.org/")
	assert.Error(t, err)
}
