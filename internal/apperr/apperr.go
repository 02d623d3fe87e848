// Package apperr defines the failure taxonomy shared by the kitchen core and
// the RPC layer. Every business rule violation is an *Error carrying a Kind
// (what category of failure) and a stable Code (which rule).
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a broad failure category. Callers branch on Kind; the RPC layer
// maps each Kind to a transport status.
type Kind int

const (
	Internal Kind = iota
	NotFound
	ValidationFailed
	PreconditionFailed
	ConflictBlocked
	ConcurrencyConflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case PreconditionFailed:
		return "precondition_failed"
	case ConflictBlocked:
		return "conflict_blocked"
	case ConcurrencyConflict:
		return "concurrency_conflict"
	default:
		return "internal"
	}
}

// Error is a typed business failure.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Code, so sentinels work with errors.Is even
// after WithDetail or Wrap produced a new value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an Error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithDetail returns a copy of e whose message is suffixed with detail,
// typically the offending ID.
func (e *Error) WithDetail(format string, args ...any) *Error {
	c := *e
	c.Message = e.Message + ": " + fmt.Sprintf(format, args...)
	return &c
}

// Wrap returns a copy of e that wraps cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// KindOf returns the Kind of err, or Internal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// CodeOf returns the stable code of err, or "internal".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal"
}
