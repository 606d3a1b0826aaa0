package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind string
	}{
		{NewError(ErrMissingParameter, "Parameter 'x' not found"), "BadRequest"},
		{NewError(ErrBalanceMismatch, "mismatch"), "BadRequest"},
		{NewError(ErrDuplicateSubmission, MsgAlreadySubmitted), "BadRequest"},
		{NewError(ErrUpstreamNotFound, "missing"), "NotFound"},
		{NewError(ErrUpstreamUnavailable, "down"), "InternalServerError"},
		{NewError(ErrEnvelopeEncoding, "broken"), "InternalServerError"},
		{ErrIdempotencyInFlight, "Conflict"},
		{ErrEmptyBalances, "BadRequest"},
		{errors.New("plain"), ""},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.kind {
			t.Errorf("%v: expected kind %q, got %q", tt.err, tt.kind, got)
		}
	}
}

func TestWrapError_OuterClassificationWins(t *testing.T) {
	t.Parallel()

	inner := WrapError(ErrEnvelopeEncoding, errors.New("xdr: short buffer"), "encoding failed")
	outer := WrapError(ErrInvalidValue, inner, MsgBadParameters)

	if Kind(outer) != "BadRequest" {
		t.Fatalf("expected BadRequest, got %s", Kind(outer))
	}
	if Message(outer) != MsgBadParameters {
		t.Fatalf("unexpected message %q", Message(outer))
	}
	if !errors.Is(outer, ErrEnvelopeEncoding) {
		t.Fatal("expected inner cause to stay reachable")
	}
	if Trace(outer) != "encoding failed" {
		t.Fatalf("unexpected trace %q", Trace(outer))
	}
}

func TestMessage_Unclassified(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", errors.New("boom"))
	if Message(err) != "wrapped: boom" {
		t.Fatalf("unexpected message %q", Message(err))
	}
}
