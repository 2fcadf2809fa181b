// Package compare checks an observed byte stream against expected bytes.
package compare

import (
	"github.com/wippyai/castcheck/errors"
)

// Result reports a successful comparison.
type Result struct {
	// Matched is the number of bytes compared, always len(expected).
	Matched int
	// Trailing is the number of observed bytes past the expected prefix.
	Trailing int
}

// Compare checks that observed starts with expected. Extra observed bytes are
// ignored; a dump routinely covers more memory than the value under test.
func Compare(expected, observed []byte) (Result, error) {
	if len(observed) < len(expected) {
		return Result{}, errors.InsufficientLength(len(expected), len(observed))
	}
	for i, want := range expected {
		if got := observed[i]; got != want {
			return Result{}, errors.ByteMismatch(i, want, got)
		}
	}
	return Result{Matched: len(expected), Trailing: len(observed) - len(expected)}, nil
}
