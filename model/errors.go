package model

import (
	"errors"
	"fmt"
)

// Fatal document-level errors. Each aborts a single analysis run and leaves
// no partial report.
var (
	// ErrUnsupportedFormat is returned at ingestion for file types outside
	// pdf, docx and txt.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDecode is returned at ingestion when a file cannot be decoded to text.
	ErrDecode = errors.New("document could not be decoded")

	// ErrEmptyDocument is returned by segmentation for empty input text.
	ErrEmptyDocument = errors.New("document text is empty")

	// ErrUnparsableDocument is returned by segmentation when the text carries
	// no recognizable language content (e.g. binary noise after a bad decode).
	ErrUnparsableDocument = errors.New("document text is unparsable")

	// ErrNoClauses signals an upstream segmentation defect surfacing at
	// aggregation; a zero-clause report is never produced.
	ErrNoClauses = errors.New("no clauses to aggregate")
)

// CapabilityError kinds
const (
	CapabilityTimeout     = "timeout"
	CapabilityUnavailable = "unavailable"
)

// CapabilityError reports a failed call to an external classification or
// generation capability. It is recovered per clause and never aborts a run.
type CapabilityError struct {
	Capability string // classify, generate, extract
	Kind       string // timeout, unavailable
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s capability %s: %v", e.Capability, e.Kind, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// IsCapabilityError reports whether err is (or wraps) a CapabilityError.
func IsCapabilityError(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}
