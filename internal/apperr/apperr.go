// Package apperr defines the error kinds surfaced by bragboard operations.
//
// Every failure leaving the client or the feed store is an *Error carrying one
// of the sentinel kinds below, so callers branch with errors.Is:
//
//	if errors.Is(err, apperr.ErrAuth) { ... send the user to login ... }
package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication failed")
	ErrConflict   = errors.New("conflict")
	ErrNetwork    = errors.New("network error")
)

// Error is a typed operation failure.
type Error struct {
	Kind   error  // one of the Err* sentinels
	Op     string // operation that failed, e.g. "react"
	Detail string // human readable detail, often the server's "detail" field
	Status int    // HTTP status when the failure came from a response
	Err    error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = e.Detail
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind, so errors.Is(err, ErrConflict) works through wrapping.
func (e *Error) Is(target error) bool { return target == e.Kind }

// New builds an *Error of the given kind.
func New(kind error, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Validation reports an empty or missing required input caught before any network call.
func Validation(op, detail string) *Error {
	return New(ErrValidation, op, detail)
}

// Wrap classifies err for op. Errors that already carry a kind keep it; context
// cancellation and anything unknown become ErrNetwork.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		if typed.Op == "" || typed.Op == op {
			return &Error{Kind: typed.Kind, Op: op, Detail: typed.Detail, Status: typed.Status, Err: typed.Err}
		}
		return &Error{Kind: typed.Kind, Op: op, Detail: typed.Detail, Status: typed.Status, Err: err}
	}
	detail := ""
	if errors.Is(err, context.DeadlineExceeded) {
		detail = "request timed out"
	}
	return &Error{Kind: ErrNetwork, Op: op, Detail: detail, Err: err}
}

// KindOf returns the sentinel kind of err, or nil when err carries none.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrAuth, ErrConflict, ErrNetwork} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Describe renders a short, user-facing notice for err.
func Describe(err error) string {
	if errors.Is(err, ErrAuth) {
		return fmt.Sprintf("%v (run 'bragboard login' to refresh your session)", err)
	}
	return err.Error()
}
