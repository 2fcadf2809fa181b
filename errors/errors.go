package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCatalog  Phase = "catalog"  // type lookup
	PhaseParse    Phase = "parse"    // dump / expected-bytes / summary parsing
	PhaseCompare  Phase = "compare"  // byte comparison
	PhaseVerify   Phase = "verify"   // outcome verification
	PhaseGenerate Phase = "generate" // test artifact generation
	PhaseRun      Phase = "run"      // external simulator invocation
	PhaseUsage    Phase = "usage"    // command-line handling
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownType        Kind = "unknown_type"
	KindMalformedToken     Kind = "malformed_token"
	KindInsufficientLength Kind = "insufficient_length"
	KindByteMismatch       Kind = "byte_mismatch"
	KindEmptyInput         Kind = "empty_input"
	KindMalformedDocument  Kind = "malformed_document"
	KindOutcomeMismatch    Kind = "outcome_mismatch"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindConfig             Kind = "config"
	KindExitMismatch       Kind = "exit_mismatch"
	KindStdoutMismatch     Kind = "stdout_mismatch"
	KindIO                 Kind = "io"
)

// Exit codes shared by every command-line entry point.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// Error is the structured error type used throughout castcheck
type Error struct {
	Expected any
	Actual   any
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Field    string
	Detail   string
	Index    int
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	switch {
	case e.Kind == KindByteMismatch:
		fmt.Fprintf(&b, " at byte %d", e.Index)
	case e.Field != "":
		b.WriteString(" at ")
		b.WriteString(e.Field)
	case e.Line > 0:
		fmt.Fprintf(&b, " at line %d", e.Line)
	}

	hasValues := e.Expected != nil || e.Actual != nil || e.Kind == KindOutcomeMismatch
	if hasValues {
		b.WriteString(": expected ")
		b.WriteString(FormatValue(e.Expected))
		b.WriteString(", actual ")
		b.WriteString(FormatValue(e.Actual))
	}

	if e.Detail != "" {
		if hasValues {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// FormatValue renders an expected/actual value the way diagnostics print it:
// bytes as 0xNN, a nil value as null, everything else with %v.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case byte:
		return fmt.Sprintf("0x%02X", x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Index sets the byte index
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Line sets the 1-based source line
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Field sets the document field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Expected sets the expected value
func (b *Builder) Expected(v any) *Builder {
	b.err.Expected = v
	return b
}

// Actual sets the observed value
func (b *Builder) Actual(v any) *Builder {
	b.err.Actual = v
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownType creates a catalog lookup error
func UnknownType(name string) *Error {
	return &Error{
		Phase:  PhaseCatalog,
		Kind:   KindUnknownType,
		Value:  name,
		Detail: fmt.Sprintf("type %q is not registered", name),
	}
}

// MalformedToken creates an error for a byte token that is not hexadecimal
func MalformedToken(line int, token string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindMalformedToken,
		Line:   line,
		Value:  token,
		Detail: fmt.Sprintf("invalid hex byte %q", token),
		Cause:  cause,
	}
}

// InsufficientLength creates an error for an observed stream shorter than expected
func InsufficientLength(expected, actual int) *Error {
	return &Error{
		Phase:    PhaseCompare,
		Kind:     KindInsufficientLength,
		Expected: expected,
		Actual:   actual,
		Detail:   "dump shorter than expected",
	}
}

// ByteMismatch creates an error for the first differing byte
func ByteMismatch(index int, expected, actual byte) *Error {
	return &Error{
		Phase:    PhaseCompare,
		Kind:     KindByteMismatch,
		Index:    index,
		Expected: expected,
		Actual:   actual,
	}
}

// EmptyInput creates an error for a blank document
func EmptyInput(what string) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindEmptyInput,
		Detail: fmt.Sprintf("empty %s", what),
	}
}

// MalformedDocument creates a document parse error
func MalformedDocument(cause error) *Error {
	return &Error{
		Phase:  PhaseVerify,
		Kind:   KindMalformedDocument,
		Detail: "invalid JSON",
		Cause:  cause,
	}
}

// OutcomeMismatch creates an error for a field whose value differs from the expected literal.
// A nil actual stands for a missing field.
func OutcomeMismatch(field, expected string, actual any) *Error {
	return &Error{
		Phase:    PhaseVerify,
		Kind:     KindOutcomeMismatch,
		Field:    field,
		Expected: expected,
		Actual:   actual,
	}
}

// OutOfBounds creates an error for a read outside the recorded memory
func OutOfBounds(addr uint32, length int) *Error {
	return &Error{
		Phase:  PhaseCompare,
		Kind:   KindOutOfBounds,
		Value:  addr,
		Detail: fmt.Sprintf("read of %d bytes at 0x%04X outside recorded memory", length, addr),
	}
}

// Config creates a missing/invalid configuration error
func Config(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConfig,
		Detail: detail,
	}
}

// IO wraps a file or process handling failure
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ExitCode maps an error onto the process exit code convention:
// 0 verified, 1 verification failed, 2 usage or environment error.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindConfig, KindIO:
			return ExitUsage
		}
	}
	return ExitFailed
}
