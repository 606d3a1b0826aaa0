package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by a use case wraps exactly one of these
// and the HTTP layer maps them to status codes.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal server error")
	ErrConflict   = errors.New("conflict")
)

// kindError is a named cause that unwraps to its kind.
type kindError struct {
	name string
	kind error
}

func (e *kindError) Error() string { return e.name }
func (e *kindError) Unwrap() error { return e.kind }

func newCause(name string, kind error) error {
	return &kindError{name: name, kind: kind}
}

var (
	// Request errors
	ErrMissingParameter    = newCause("missing parameter", ErrBadRequest)
	ErrInvalidValue        = newCause("invalid value", ErrBadRequest)
	ErrBalanceMismatch     = newCause("balance mismatch", ErrBadRequest)
	ErrDuplicateSubmission = newCause("duplicate submission", ErrBadRequest)
	ErrEnvelopeRejected    = newCause("envelope rejected", ErrBadRequest)

	// Ledger errors
	ErrUpstreamNotFound    = newCause("upstream resource not found", ErrNotFound)
	ErrUpstreamUnavailable = newCause("upstream unavailable", ErrInternal)
	ErrEnvelopeEncoding    = newCause("envelope encoding failed", ErrInternal)

	ErrEmptyBalances = newCause("no balances to project", ErrInvalidValue)

	ErrIdempotencyInFlight = newCause("request with this idempotency key is in progress", ErrConflict)
)

// MsgBadParameters is the stable message returned when an envelope cannot be built
// from otherwise well-formed input.
const MsgBadParameters = "Bad request, Please ensure parameters are valid."

// MsgAlreadySubmitted is returned when a memo search or hash lookup finds
// the transaction on the ledger.
const MsgAlreadySubmitted = "Transaction is already submitted"

// Error carries a stable client-facing message, a classified cause and
// optionally the underlying error used for diagnostics.
type Error struct {
	Cause   error
	Err     error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes both the classification and the diagnostic error to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Cause}
	}
	return []error{e.Cause, e.Err}
}

// NewError builds a classified error with a formatted message.
func NewError(cause error, format string, args ...any) error {
	return &Error{Cause: cause, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies err under cause with a stable message.
func WrapError(cause, err error, format string, args ...any) error {
	return &Error{Cause: cause, Err: err, Message: fmt.Sprintf(format, args...)}
}

// Kind returns the kind label of err, or "" when it is unclassified.
// The outermost classification wins over any wrapped diagnostic error.
func Kind(err error) string {
	var de *Error
	if errors.As(err, &de) {
		err = de.Cause
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrConflict):
		return "Conflict"
	case errors.Is(err, ErrInternal):
		return "InternalServerError"
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	}
	return ""
}

// Message returns the client-facing message of err.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// Trace returns the diagnostic chain of err when one was attached.
func Trace(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Err != nil {
		return de.Err.Error()
	}
	return ""
}
