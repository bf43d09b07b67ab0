// Package verify implements the final gate of the setup procedure: a
// throwaway Python script that imports every primary package and, through
// the rpy2 bridge, loads every R package.
//
// Like the R installer, verification follows a two-stage contract: Script
// is a pure function producing the Python source (unit-testable), Run is
// the side-effecting executor with a guaranteed-release temp file.
package verify

import (
	"fmt"
	"strings"
	"text/template"
)

// ScriptName is the fixed filename the generated verification script is
// written to, in the working directory.
const ScriptName = "verify_installation.py"

// verifyTemplate is the Python source executed by the configured
// interpreter. The ordering is deliberate:
//
//  1. Plain imports first — cheap, and an import failure means the pip
//     step left the environment broken.
//  2. rpy2 second — if the bridge itself is missing, verification stops
//     before touching R.
//  3. Each R package loaded through ro.r inside a conversion context
//     (rpy2 3.5+ deprecated the global pandas2ri.activate in favor of
//     localconverter).
//
// The first failure exits with a non-zero status, which the runner
// converts into a failed step.
var verifyTemplate = template.Must(template.New("verify").Parse(`
import sys

# Test Python packages
python_packages = [{{.PythonPackages}}]

for pkg in python_packages:
    try:
        __import__(pkg)
        print(f"✓ {pkg}")
    except ImportError as e:
        print(f"✗ {pkg}: {e}")
        sys.exit(1)

# Test rpy2 and R packages
try:
    import rpy2.robjects as ro
    from rpy2.robjects import pandas2ri
    from rpy2.robjects.conversion import localconverter

    # Use the conversion context approach (pandas2ri.activate is deprecated)
    with localconverter(ro.default_converter + pandas2ri.converter):
        r_packages = [{{.RPackages}}]
        for pkg in r_packages:
            try:
                ro.r(f'library({pkg})')
                print(f"✓ R package: {pkg}")
            except Exception as e:
                print(f"✗ R package {pkg}: {e}")
                sys.exit(1)

        print("✓ rpy2 and R packages working correctly")

except ImportError as e:
    print(f"✗ rpy2: {e}")
    sys.exit(1)

print("\n🎉 All packages installed and verified successfully!")
`))

// Script renders the verification source for the given package lists.
// Pure function of its inputs.
func Script(pythonPackages, rPackages []string) (string, error) {
	if len(pythonPackages) == 0 && len(rPackages) == 0 {
		return "", fmt.Errorf("nothing to verify: both package lists are empty")
	}

	var buf strings.Builder
	err := verifyTemplate.Execute(&buf, struct {
		PythonPackages string
		RPackages      string
	}{
		PythonPackages: pythonLiteralList(pythonPackages),
		RPackages:      pythonLiteralList(rPackages),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render verification script: %w", err)
	}
	return buf.String(), nil
}

// pythonLiteralList renders names as a comma-separated sequence of
// single-quoted Python string literals.
func pythonLiteralList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}
