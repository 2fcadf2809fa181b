// Package outcome verifies a labelled result in a run summary.
//
// A summary is a JSON object written by the trace tool when execution stops.
// Only one field is inspected, by default the halt reason.
package outcome

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wippyai/castcheck/errors"
)

// HaltField is the summary key naming why execution stopped.
const HaltField = "halt"

// Document is a parsed summary.
type Document map[string]any

// ParseDocument parses blob as a JSON object.
func ParseDocument(blob []byte) (Document, error) {
	blob = bytes.TrimSpace(blob)
	if len(blob) == 0 {
		return nil, errors.EmptyInput("summary output")
	}
	var doc Document
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, errors.MalformedDocument(err)
	}
	if doc == nil {
		return nil, errors.MalformedDocument(fmt.Errorf("summary is null, want an object"))
	}
	return doc, nil
}

// Lookup returns the value of field, or nil when absent.
func (d Document) Lookup(field string) any {
	return d[field]
}

// Verify checks that field in blob is the string want. A missing field, or
// one holding a non-string value, never matches.
func Verify(blob []byte, field, want string) error {
	doc, err := ParseDocument(blob)
	if err != nil {
		return err
	}
	actual := doc.Lookup(field)
	if s, ok := actual.(string); ok && s == want {
		return nil
	}
	return errors.OutcomeMismatch(field, want, actual)
}
