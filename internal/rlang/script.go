package rlang

import (
	"fmt"
	"strings"
	"text/template"
)

// InstallScriptName is the fixed filename the generated installer is
// written to, in the working directory. The file exists only for the
// duration of the install step.
const InstallScriptName = "install_r_packages.R"

// installTemplate is the R source executed by Rscript. It installs only
// the packages missing from the library, then loads every declared
// package so that a broken installation fails the step immediately rather
// than surfacing later inside an analysis script.
var installTemplate = template.Must(template.New("rinstall").Parse(`
# Install required R packages
packages <- c({{.Packages}})

# Check if packages are installed
missing_packages <- packages[!(packages %in% installed.packages()[,"Package"])]

if(length(missing_packages) > 0) {
    cat("Installing missing packages:", paste(missing_packages, collapse=", "), "\n")
    install.packages(missing_packages, repos="{{.Repo}}")
} else {
    cat("All R packages are already installed\n")
}

cat("Loading packages to verify installation...\n")
for(pkg in packages) {
    library(pkg, character.only=TRUE)
    cat("✓", pkg, "loaded successfully\n")
}
`))

// InstallScript renders the R installer source for the given package list
// and repository URL. It is a pure function of its inputs.
//
// Package names are embedded as quoted R string literals; callers are
// expected to have validated them (config.Validate rejects names that
// could escape a literal).
func InstallScript(packages []string, repoURL string) (string, error) {
	if len(packages) == 0 {
		return "", fmt.Errorf("no R packages declared")
	}

	quoted := make([]string, len(packages))
	for i, pkg := range packages {
		quoted[i] = fmt.Sprintf("%q", pkg)
	}

	var buf strings.Builder
	err := installTemplate.Execute(&buf, struct {
		Packages string
		Repo     string
	}{
		Packages: strings.Join(quoted, ", "),
		Repo:     repoURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render R install script: %w", err)
	}
	return buf.String(), nil
}
