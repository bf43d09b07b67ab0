// Package model defines the domain types for the envup CLI.
//
// The types here are deliberately small: envup has no persistent state.
// A setup run only ever deals with package declarations, the outcome of
// individual environment checks, and process exit codes. Everything else
// (installed-package state, version resolution) lives in the external
// package managers that envup drives as subprocesses.
package model

import (
	"fmt"
	"strings"
)

// CheckStatus represents the outcome of a single environment check
// performed by the doctor command or the setup pipeline's guard steps.
type CheckStatus string

const (
	// StatusOK indicates the check passed.
	StatusOK CheckStatus = "ok"

	// StatusWarning indicates the check found an advisory problem that
	// does not block setup (e.g., Python below the recommended minimum).
	StatusWarning CheckStatus = "warning"

	// StatusMissing indicates a required component was not found
	// (e.g., the R runtime is not on PATH).
	StatusMissing CheckStatus = "missing"
)

// String returns the string representation of CheckStatus.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands.
func (s CheckStatus) String() string {
	return string(s)
}

// IsValid checks whether the CheckStatus value is one of the
// predefined valid states.
func (s CheckStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusWarning, StatusMissing:
		return true
	default:
		return false
	}
}

// ParseCheckStatus converts a string to a CheckStatus.
// Returns an error if the string does not match any valid status.
func ParseCheckStatus(s string) (CheckStatus, error) {
	status := CheckStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid check status: %q (valid: ok, warning, missing)", s)
	}
	return status, nil
}

// Glyph returns the console marker for the status. These glyphs are part
// of the user-facing output contract: operators grep setup logs for them.
func (s CheckStatus) Glyph() string {
	switch s {
	case StatusOK:
		return "✓"
	case StatusWarning:
		return "⚠"
	default:
		return "✗"
	}
}

// CheckResult is the outcome of one named environment check.
// A slice of these forms the doctor report.
type CheckResult struct {
	// Name identifies the check (e.g., "python", "r", "manifest").
	Name string `json:"name"`

	// Status is the check outcome.
	Status CheckStatus `json:"status"`

	// Detail is a human-readable elaboration: the detected version,
	// the missing executable, the parse error, etc.
	Detail string `json:"detail,omitempty"`
}

// PackageSpec is a single package declaration from the requirements
// manifest. The constraint is carried verbatim — envup never resolves
// versions itself; that is entirely pip's job.
type PackageSpec struct {
	// Name is the distribution name (e.g., "pandas"), including any
	// extras suffix ("pandas[performance]").
	Name string `json:"name"`

	// Constraint is the version constraint as written in the manifest
	// (e.g., ">=2.0"), or empty when the entry is unpinned.
	Constraint string `json:"constraint,omitempty"`

	// Raw is the original manifest line, preserved for diagnostics.
	Raw string `json:"raw,omitempty"`
}

// String returns the spec formatted the way pip would accept it.
func (p PackageSpec) String() string {
	return p.Name + p.Constraint
}

// ExitCode defines the CLI exit codes. The setup procedure's observable
// contract is binary: 0 for success (including an operator-declined
// confirmation), 1 for any gated failure.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, or the
	// operator declined the environment-guard prompt.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates a gated step failed: package installation,
	// runtime detection, or verification.
	ExitFailure ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description. For subprocess
	// failures this includes the remediation guidance that operators
	// rely on (the guidance text is part of the contract).
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
