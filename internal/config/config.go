// Package config handles loading and validation of the optional envup
// configuration file.
//
// envup works with zero configuration: every setting has a default that
// matches the analysis project's fixed toolchain. A config file in the
// working directory can override executables, the manifest path, and the
// package lists. Both YAML and JSONC variants are supported — JSONC
// (JSON with Comments) is stripped with github.com/tidwall/jsonc before
// parsing with the standard encoding/json library.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the setup procedure. All fields are
// optional in the file; zero values are filled from Default.
type Config struct {
	// PythonExec is the Python interpreter used for pip installs, the
	// version guard, and the verification script. The default "python3"
	// resolves through PATH, so an activated virtualenv wins naturally.
	PythonExec string `yaml:"python" json:"python"`

	// RExec is the R binary used for the runtime reachability check.
	RExec string `yaml:"r" json:"r"`

	// RscriptExec is the Rscript binary that executes the generated
	// R package installation script.
	RscriptExec string `yaml:"rscript" json:"rscript"`

	// Manifest is the pip requirements file, relative to the working
	// directory.
	Manifest string `yaml:"manifest" json:"manifest"`

	// MinPythonVersion is the advisory minimum interpreter version.
	// Falling below it produces a warning, never a failure.
	MinPythonVersion string `yaml:"minPythonVersion" json:"minPythonVersion"`

	// PythonPackages are the import names checked by the verifier.
	// Note these are import names, not distribution names ("sklearn",
	// not "scikit-learn").
	PythonPackages []string `yaml:"pythonPackages" json:"pythonPackages"`

	// RPackages are the R packages installed and loaded via Rscript and
	// verified through the rpy2 bridge.
	RPackages []string `yaml:"rPackages" json:"rPackages"`

	// CRANRepo is the repository URL passed to install.packages().
	CRANRepo string `yaml:"cranRepo" json:"cranRepo"`
}

// Default returns the built-in configuration: the exact toolchain the
// analysis project declares.
func Default() *Config {
	return &Config{
		PythonExec:       "python3",
		RExec:            "R",
		RscriptExec:      "Rscript",
		Manifest:         "requirements.txt",
		MinPythonVersion: "3.10",
		PythonPackages: []string{
			"pandas", "polars", "sklearn", "statsmodels",
			"seaborn", "matplotlib", "openpyxl", "pyarrow", "jupyter",
		},
		RPackages: []string{
			"lme4",
			"lmerTest",
			"emmeans",
			"MASS", // GLMM negative binomial
		},
		CRANRepo: "https://cran.r-project.org/",
	}
}

// candidateNames lists the config file names probed by Find, in priority
// order. YAML is preferred; the JSONC variants exist for projects that
// keep all tool config in commented JSON.
var candidateNames = []string{
	"envup.yaml",
	"envup.yml",
	"envup.jsonc",
	"envup.json",
}

// Find searches the given directory for a config file and returns the
// path of the first candidate that exists, or the empty string when the
// project carries no config file (which is the common case).
func Find(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		// os.Stat checks existence without reading contents.
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a config file and merges it over the defaults. The format is
// chosen by extension: .yaml/.yml parse as YAML, .json/.jsonc parse as
// JSONC (comments and trailing commas stripped first).
//
// Fields omitted from the file keep their default values because
// unmarshalling into the pre-filled struct leaves absent keys untouched.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case ".json", ".jsonc":
		// Strip JSONC comments (// and /* */) and trailing commas before
		// parsing with the standard library.
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSONC config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (expected .yaml, .yml, .json or .jsonc)", filepath.Ext(path))
	}

	return cfg, nil
}

// Discover loads the config for the given working directory: the first
// candidate file if one exists, otherwise the defaults. An explicit path
// (from the --config flag) bypasses discovery entirely.
func Discover(dir, explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	if path := Find(dir); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// ValidationError represents a specific validation failure in a config file.
type ValidationError struct {
	// Field is the config key that failed validation (e.g., "rPackages").
	Field string

	// Message describes what's wrong with the field value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Validate performs conformance checks on a loaded configuration and
// returns the list of problems found (empty list = valid configuration).
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.PythonExec == "" {
		errors = append(errors, ValidationError{Field: "python", Message: "python executable must not be empty"})
	}
	if c.RExec == "" {
		errors = append(errors, ValidationError{Field: "r", Message: "R executable must not be empty"})
	}
	if c.RscriptExec == "" {
		errors = append(errors, ValidationError{Field: "rscript", Message: "Rscript executable must not be empty"})
	}
	if c.Manifest == "" {
		errors = append(errors, ValidationError{Field: "manifest", Message: "manifest path must not be empty"})
	}

	// Package names feed generated R/Python source, so reject anything
	// that could break out of a string literal in the generated script.
	for _, pkg := range c.PythonPackages {
		if !validPackageName(pkg) {
			errors = append(errors, ValidationError{
				Field:   "pythonPackages",
				Message: fmt.Sprintf("invalid package name %q", pkg),
			})
		}
	}
	for _, pkg := range c.RPackages {
		if !validPackageName(pkg) {
			errors = append(errors, ValidationError{
				Field:   "rPackages",
				Message: fmt.Sprintf("invalid package name %q", pkg),
			})
		}
	}

	if len(c.PythonPackages) == 0 {
		errors = append(errors, ValidationError{Field: "pythonPackages", Message: "at least one package is required"})
	}
	if len(c.RPackages) == 0 {
		errors = append(errors, ValidationError{Field: "rPackages", Message: "at least one package is required"})
	}

	if !strings.HasPrefix(c.CRANRepo, "http://") && !strings.HasPrefix(c.CRANRepo, "https://") {
		errors = append(errors, ValidationError{
			Field:   "cranRepo",
			Message: fmt.Sprintf("repository URL %q must be http(s)", c.CRANRepo),
		})
	}

	return errors
}

// validPackageName accepts names composed of letters, digits, dots,
// hyphens and underscores — the union of what Python modules and R
// packages use. Everything else is rejected before it can reach a
// generated script.
func validPackageName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
