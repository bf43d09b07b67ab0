// Package script provides the scoped temporary-script resource used by the
// R installer and the verifier.
//
// Both steps materialize generated source text to a file on disk, hand the
// path to an external interpreter, and must remove the file afterwards —
// whether the interpreter succeeded or not. Materialize models this as an
// acquire/release pair: the caller defers the returned release function,
// so every ordinary exit path (including panics) removes the file. Removal
// under an external SIGKILL is not achievable; that gap is inherent to the
// procedure, not to this implementation.
package script

import (
	"fmt"
	"os"
)

// Materialize writes source to path and returns a release function that
// removes the file. Release is idempotent: calling it after the file is
// already gone is harmless.
func Materialize(path, source string) (release func(), err error) {
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write script %s: %w", path, err)
	}
	return func() {
		// Best-effort removal. A missing file is fine; anything else
		// (e.g., permissions changed underneath us) is not worth
		// failing a completed step over.
		_ = os.Remove(path)
	}, nil
}
