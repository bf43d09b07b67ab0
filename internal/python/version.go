package python

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmr-tortoise/envup/internal/runner"
)

// Version is a parsed interpreter version. Only the numeric components
// matter for the guard; pre-release suffixes ("3.13.0rc1") are ignored
// beyond the patch digits.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v is strictly older than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// versionRegex extracts the leading numeric components from strings like
// "Python 3.11.4", "3.10", or "Python 3.13.0rc1".
var versionRegex = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion parses a version from free-form text. It accepts both the
// bare form used in config files ("3.10") and the interpreter's
// "--version" banner ("Python 3.11.4").
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("no version found in %q", strings.TrimSpace(s))
	}

	// The regex guarantees the captured groups are digit runs, so
	// Atoi cannot fail here; errors are ignored deliberately.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch := 0
	if m[3] != "" {
		patch, _ = strconv.Atoi(m[3])
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// VersionWarning runs the interpreter version query and compares the
// result against the advisory minimum. It returns a non-empty warning
// message when the interpreter is below the minimum or when the version
// cannot be determined at all.
//
// This guard never blocks: whatever it finds, setup proceeds. Only the
// returned message (printed by the pipeline) tells the operator anything
// was off. Failures of every other step are fatal; this asymmetry is
// intentional and preserved from the procedure's original contract.
func VersionWarning(ctx context.Context, r runner.Runner, pythonExec string, min Version) string {
	res := r.Run(ctx, "Checking Python version", pythonExec, "--version")
	if !res.OK {
		return fmt.Sprintf("could not determine Python version (%s --version failed)", pythonExec)
	}

	// Python 3 prints the banner to stdout; Python 2 printed it to
	// stderr. Combined() covers both.
	current, err := ParseVersion(res.Combined())
	if err != nil {
		return fmt.Sprintf("could not parse Python version from %q", res.Combined())
	}

	if current.Less(min) {
		return fmt.Sprintf("Python %d.%d+ is recommended\nCurrent version: %s",
			min.Major, min.Minor, current)
	}
	return ""
}
