// Package python covers the primary-runtime side of the setup procedure:
// the isolated-environment guard, the interpreter version guard, and the
// pip-driven package installation.
package python

import "os"

// IsolationProbe reports whether the process is running inside an
// isolated Python environment. The probe is a function type so the setup
// pipeline can inject a fake in tests instead of inspecting the live
// process environment.
type IsolationProbe func() bool

// InVirtualEnv is the default IsolationProbe. It recognizes the two
// isolation mechanisms the analysis project supports:
//
//   - virtualenv / venv: activation exports VIRTUAL_ENV
//   - conda: activation exports CONDA_PREFIX (and CONDA_DEFAULT_ENV,
//     which some older conda versions set exclusively)
//
// Isolation matters because installing into the system interpreter
// pollutes global state and, on Debian-family systems, fails outright
// with an externally-managed-environment error.
func InVirtualEnv() bool {
	if os.Getenv("VIRTUAL_ENV") != "" {
		return true
	}
	if os.Getenv("CONDA_PREFIX") != "" || os.Getenv("CONDA_DEFAULT_ENV") != "" {
		return true
	}
	return false
}

// VirtualEnvGuidance is printed when the guard finds no isolation.
// The wording is part of the operator-facing contract.
const VirtualEnvGuidance = `⚠️  Warning: Not running in a virtual environment
It's highly recommended to use a virtual environment:
  python -m venv venv
  source venv/bin/activate  # On Windows: venv\Scripts\activate
`
