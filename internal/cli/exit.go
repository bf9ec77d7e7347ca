package cli

import (
	"errors"

	"github.com/tml-lang/tmlc/internal/diag"
)

// ExitToolchainError is the exit code for a plugin/toolchain failure
// that carries no diagnostic code of its own (spec section 4.6).
const ExitToolchainError = 1

// diagError wraps a diagnostic bag that aborted a command, so Execute
// can recover the stable short code of spec section 7 for the process
// exit status.
type diagError struct {
	bag *diag.Bag
}

func newDiagError(bag *diag.Bag) error {
	return &diagError{bag: bag}
}

func (e *diagError) Error() string { return e.bag.Format(false) }

// exitCodeFor maps an error to the process exit code spec section 4.6
// describes: 1 for a plain toolchain/plugin error, or a code derived
// from the first diagnostic's short code when the error is a diagError.
func exitCodeFor(err error) int {
	var de *diagError
	if errors.As(err, &de) {
		diags := de.bag.Diagnostics()
		if len(diags) > 0 {
			return codeFromDiagnostic(diags[0].Code)
		}
	}
	return ExitToolchainError
}

// codeFromDiagnostic turns a short code like "T057" or "C019" into a
// small positive process exit status: the trailing digits, reduced
// into the 2-255 range a Unix exit status can actually carry (0 and 1
// are reserved for success and the generic toolchain error).
func codeFromDiagnostic(code string) int {
	n := 0
	found := false
	for _, r := range code {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
		}
	}
	if !found {
		return ExitToolchainError
	}
	n = n % 254
	return n + 2
}
