// Package castcheck predicts and verifies the bytes an integer cast leaves in
// memory on a target whose execution is observed only through a trace.
//
// The library is organized into several packages with distinct responsibilities:
//
//	castcheck/           Root package with the Memory view interface and shared constants
//	├── types/           Catalog of the eight fixed-width integer types
//	├── convert/         Cast evaluation and little-endian serialization
//	├── matrix/          Generation of the 64 source/destination test artifacts
//	├── dump/            Parsing of trace memory dumps and expected-bytes files
//	├── compare/         Prefix comparison of expected and observed bytes
//	├── outcome/         Verification of one field of a JSON run summary
//	├── runner/          Invocation of an external simulator process
//	└── errors/          Structured error types for diagnostics
//
// # Generation
//
// Every pair of catalog types becomes one test case. The expected bytes are
// computed without executing anything:
//
//	for _, c := range matrix.Cases() {
//	    fmt.Printf("%s: % X\n", c.Name(), c.Expected())
//	}
//
// # Verification
//
// After an external toolchain has compiled and traced a case, its dump is
// checked against the expected bytes:
//
//	observed, err := dump.Parse(traceOutput)
//	if err != nil {
//	    return err
//	}
//	res, err := compare.Compare(expected, observed)
//
// and its summary against the expected halt reason:
//
//	err := outcome.Verify(summary, outcome.HaltField, castcheck.HaltReason)
//
// Comparison is prefix based: trailing observed bytes are ignored, a shorter
// stream fails with insufficient_length, and the first differing byte fails
// with byte_mismatch carrying its index and both values.
package castcheck
