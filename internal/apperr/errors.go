package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind uint8

// List of error kinds
const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthenticated:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "InternalServerError"
	}
}

// Sentinels for errors.Is checks across layers.
var (
	// ErrInvalid is returned when the input fails domain validation.
	ErrInvalid = errors.New("invalid input")
	// ErrUnauthenticated is returned when the caller carries no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the caller may not perform the action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
)

// Error is a classified error with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending parameter for BadRequest errors.
	Field   string
	Details any
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is match an *Error against the kind sentinels.
func (e *Error) Is(target error) bool {
	return target == sentinelOf(e.Kind)
}

func sentinelOf(k Kind) error {
	switch k {
	case KindBadRequest:
		return ErrInvalid
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return nil
	}
}

// New returns an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// BadRequest returns a BadRequest error naming the offending field.
func BadRequest(field, msg string) *Error {
	return &Error{Kind: KindBadRequest, Field: field, Message: msg}
}

// Unauthenticated returns an Unauthenticated error.
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }

// Forbidden returns a Forbidden error.
func Forbidden(msg string) *Error { return New(KindForbidden, msg) }

// NotFound returns a NotFound error.
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Conflict returns a Conflict error.
func Conflict(msg string) *Error { return New(KindConflict, msg) }

// KindOf maps any error to its Kind. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrInvalid):
		return KindBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// As returns the *Error carried by err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
