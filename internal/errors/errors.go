// Package errors defines typed client errors with categories for precondition
// failures raised locally by the SDK, as opposed to errors reported by the
// Anchor server. It provides machine-readable error kinds alongside
// human-friendly messages so callers can branch on the failure category
// without string matching.
//
// The package supports wrapping underlying errors while maintaining error kind
// information, making it easier to handle different types of failures
// appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// MustAuthenticateFirst indicates an authenticated operation was invoked
	// while logged out.
	MustAuthenticateFirst Kind = "must_authenticate_first"
	// UserNoLongerValid indicates the user passed to a link operation no
	// longer matches the logged-in session.
	UserNoLongerValid Kind = "user_no_longer_valid"
	// LoggedOutDuringRequest indicates the session was cleared concurrently
	// while a request was in flight.
	LoggedOutDuringRequest Kind = "logged_out_during_request"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// IsKind reports whether err (or anything it wraps) is an E of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *E
	return stderrors.As(err, &e) && e.Kind == kind
}
