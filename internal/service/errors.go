package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for callers that map errors to exit
// codes or HTTP statuses.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindTooShort         Kind = "too_short"
	KindInvalidOptions   Kind = "invalid_options"
	KindExternalService  Kind = "external_service"
	KindAnalysisDegraded Kind = "analysis_degraded"
	KindInternal         Kind = "internal"
)

// Error pairs a kind with a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
