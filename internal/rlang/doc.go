// Package rlang covers the secondary-runtime side of the setup procedure:
// detecting the R installation and installing the statistical packages.
//
// Package installation follows a two-stage contract:
//
//   - InstallScript is a pure function producing R source text from a
//     typed package list. It is unit-tested without spawning anything.
//   - InstallPackages is the side-effecting executor: it materializes the
//     script to a file, runs it via Rscript, and guarantees the file is
//     removed on every exit path.
//
// The generated script computes the set difference between the declared
// packages and installed.packages(), installs only the missing ones from
// CRAN, and then loads every declared package to prove the installation —
// so a run where all packages are already present performs zero install
// actions but still reports each package as loaded.
package rlang
