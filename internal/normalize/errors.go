package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the normalization taxonomy. Callers match them with
// errors.Is against the *Error returned by the pipeline.
var (
	// ErrDecode reports input that is empty or not decodable as UTF-8 text.
	ErrDecode = errors.New("content is empty or not valid text")
	// ErrMalformedInput reports content of a recognized format family that
	// violates the family's grammar (unclosed XML tags, non-numeric LCOV
	// fields, and so on).
	ErrMalformedInput = errors.New("malformed coverage input")
	// ErrUnrecognizedFormat reports content with neither XML-like nor
	// LCOV-like markers for which both parse attempts failed.
	ErrUnrecognizedFormat = errors.New("unrecognized coverage format")
)

// Error is the umbrella failure returned by Pipeline.Normalize. It records
// which strategies were attempted and wraps one of the sentinel errors, so
// no parser-internal failure type ever reaches the caller.
type Error struct {
	Attempted []Strategy
	Err       error
}

func (e *Error) Error() string {
	if len(e.Attempted) == 0 {
		return fmt.Sprintf("normalize coverage report: %v", e.Err)
	}
	names := make([]string, len(e.Attempted))
	for i, s := range e.Attempted {
		names[i] = string(s)
	}
	return fmt.Sprintf("normalize coverage report (tried %s): %v", strings.Join(names, ", "), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
