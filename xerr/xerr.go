// Package xerr defines the error taxonomy the pipeline surfaces to callers
// of Normalize/NormalizeFile.
//
// This is not a diagnostics collector: every error propagates immediately
// to the caller with no partial results retained, so there is nothing to
// accumulate. Each error carries a stable, programmatic Kind rather than
// being matched by message string, and supports errors.Is/As via Unwrap.
package xerr

import (
	"fmt"

	"github.com/haldor-ness/docbasis/location"
)

// Kind is a stable, programmatic error category.
type Kind uint8

const (
	// DocumentNotProvided: empty or whitespace-only input.
	DocumentNotProvided Kind = iota
	// UnexpectedDocumentType: input is neither valid XML nor convertible HTML.
	UnexpectedDocumentType
	// MalformedXml: XML parsing failed mid-pipeline.
	MalformedXml
	// OracleFailure: an oracle call failed, wrapped with the failing stage.
	OracleFailure
	// CacheFailure: a KV store read/write error. Fatal.
	CacheFailure
	// InternalInvariantViolation: e.g. no basis node for a lineage expected to exist.
	InternalInvariantViolation
)

// String returns the canonical lowercase-with-underscores label for k.
func (k Kind) String() string {
	switch k {
	case DocumentNotProvided:
		return "document_not_provided"
	case UnexpectedDocumentType:
		return "unexpected_document_type"
	case MalformedXml:
		return "malformed_xml"
	case OracleFailure:
		return "oracle_failure"
	case CacheFailure:
		return "cache_failure"
	case InternalInvariantViolation:
		return "internal_invariant_violation"
	default:
		return "unknown"
	}
}

// Error is the concrete error type every pipeline stage returns.
//
// Construct one with [New]; use [Error.WithPosition] and [Error.WithCause]
// to attach optional context. Both set the field on the receiver and
// return that same value for chaining.
type Error struct {
	kind     Kind
	stage    string
	message  string
	position location.Position
	cause    error
}

// New constructs an Error of the given kind, tagged with the stage that
// raised it (e.g. "buildtree", "absorb", "interpret") and a human-readable
// message.
func New(kind Kind, stage, message string) *Error {
	return &Error{kind: kind, stage: stage, message: message, position: location.UnknownPosition()}
}

// WithPosition attaches a source position (meaningful for MalformedXml)
// and returns e for chaining.
func (e *Error) WithPosition(pos location.Position) *Error {
	e.position = pos
	return e
}

// WithCause attaches the underlying error this one wraps and returns e for
// chaining.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Kind returns the error's stable category.
func (e *Error) Kind() Kind {
	if e == nil {
		return InternalInvariantViolation
	}
	return e.kind
}

// Stage returns the name of the pipeline stage that raised the error.
func (e *Error) Stage() string {
	if e == nil {
		return ""
	}
	return e.stage
}

// Position returns the source position associated with the error, if any.
// Check Position().IsZero() before using it.
func (e *Error) Position() location.Position {
	if e == nil {
		return location.UnknownPosition()
	}
	return e.position
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil xerr.Error>"
	}
	if e.position.IsZero() {
		if e.cause != nil {
			return fmt.Sprintf("%s: %s: %s: %v", e.stage, e.kind, e.message, e.cause)
		}
		return fmt.Sprintf("%s: %s: %s", e.stage, e.kind, e.message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s (at %s): %v", e.stage, e.kind, e.message, e.position, e.cause)
	}
	return fmt.Sprintf("%s: %s: %s (at %s)", e.stage, e.kind, e.message, e.position)
}

// Unwrap returns the wrapped cause, enabling errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, xerr.New(xerr.MalformedXml, "", "")) style comparisons
// work without comparing messages or stages.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == other.kind
}
