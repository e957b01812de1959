package xerr

import (
	"errors"
	"testing"

	"github.com/haldor-ness/docbasis/location"
)

func TestError_IsMatchesByKindOnly(t *testing.T) {
	e1 := New(MalformedXml, "buildtree", "unexpected token")
	e2 := New(MalformedXml, "otherstage", "different message")

	if !errors.Is(e1, e2) {
		t.Fatalf("expected errors with the same Kind to match via errors.Is")
	}

	e3 := New(OracleFailure, "interpret", "timeout")
	if errors.Is(e1, e3) {
		t.Fatalf("expected errors with different Kind not to match")
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	e := New(CacheFailure, "kvstore", "write failed").WithCause(cause)

	if !errors.Is(e, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
}

func TestError_WithPositionIncludedInMessage(t *testing.T) {
	e := New(MalformedXml, "buildtree", "bad token").WithPosition(location.NewPosition(3, 1, -1))
	if got := e.Error(); got == "" {
		t.Fatalf("expected non-empty error message")
	}
	if e.Position().IsZero() {
		t.Fatalf("expected position to be set")
	}
}

func TestKind_StringValues(t *testing.T) {
	cases := map[Kind]string{
		DocumentNotProvided:        "document_not_provided",
		UnexpectedDocumentType:     "unexpected_document_type",
		MalformedXml:               "malformed_xml",
		OracleFailure:              "oracle_failure",
		CacheFailure:               "cache_failure",
		InternalInvariantViolation: "internal_invariant_violation",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestError_NilReceiverIsSafe(t *testing.T) {
	var e *Error
	if e.Kind() != InternalInvariantViolation {
		t.Errorf("nil *Error Kind() = %v, want InternalInvariantViolation", e.Kind())
	}
	if e.Stage() != "" {
		t.Errorf("nil *Error Stage() = %q, want empty", e.Stage())
	}
	if !e.Position().IsZero() {
		t.Errorf("nil *Error Position() should be zero")
	}
	if e.Error() == "" {
		t.Errorf("nil *Error Error() should not be empty")
	}
}
