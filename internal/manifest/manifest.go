// Package manifest reads the pip requirements file.
//
// envup never resolves or installs packages from the parsed entries — the
// manifest is handed to pip verbatim via `pip install -r`. Parsing exists
// for the doctor command, which reports what the project declares without
// touching the environment, and for early detection of a missing or
// malformed manifest before any subprocess runs.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mmr-tortoise/envup/internal/model"
)

// requirementRegex matches a conventional requirements line:
// a distribution name, an optional extras suffix, and an optional
// version constraint. Hashes, environment markers and continuations are
// handled before this regex is applied.
//
// Examples it accepts: "pandas", "pandas==2.2.0", "uvicorn[standard]>=0.29".
var requirementRegex = regexp.MustCompile(
	`^([A-Za-z0-9][A-Za-z0-9._-]*(?:\[[A-Za-z0-9,._ -]+\])?)\s*((?:===|==|!=|~=|>=|<=|>|<)\s*[^,\s]+(?:\s*,\s*(?:===|==|!=|~=|>=|<=|>|<)\s*[^,\s]+)*)?$`,
)

// Parse reads requirements from r and returns the declared package specs.
//
// Handled line forms:
//   - blank lines and full-line comments: skipped
//   - trailing comments ("pandas  # dataframe lib"): stripped
//   - pip directives ("-r other.txt", "-e .", "--index-url ..."): skipped,
//     pip interprets them itself at install time
//   - "name", "name==x.y", "name[extra]>=x": parsed into a PackageSpec
//
// Any other line is an error carrying the 1-based line number, so the
// doctor report can point the operator at the exact broken entry.
func Parse(r io.Reader) ([]model.PackageSpec, error) {
	var specs []model.PackageSpec

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Directive lines start with "-" (e.g., -r, -e, --extra-index-url).
		// They are pip's business, not ours.
		if strings.HasPrefix(line, "-") {
			continue
		}

		// Environment markers ("; python_version >= '3.10'") qualify when
		// an entry applies; the package spec is everything before the ";".
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		m := requirementRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("invalid requirement on line %d: %q", lineNo, strings.TrimSpace(raw))
		}

		specs = append(specs, model.PackageSpec{
			Name:       m[1],
			Constraint: strings.ReplaceAll(m[2], " ", ""),
			Raw:        strings.TrimSpace(raw),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return specs, nil
}

// stripComment removes a trailing "#" comment. A "#" only starts a comment
// at the beginning of the line or after whitespace, matching pip's rule —
// this keeps URLs with fragments intact on directive lines.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

// Load parses the requirements file at path.
func Load(path string) ([]model.PackageSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}
