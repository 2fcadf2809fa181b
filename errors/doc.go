// Package errors provides structured error types for castcheck.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the diagnostic context a verification failure needs:
// byte index, expected and actual values, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompare, errors.KindByteMismatch).
//		Index(3).
//		Expected(byte(0xA5)).
//		Actual(byte(0x00)).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ByteMismatch(3, 0xA5, 0x00)
//	err := errors.InsufficientLength(8, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
// ExitCode maps any error onto the process exit code convention used by the
// command-line tools.
package errors
