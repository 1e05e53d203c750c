package book

import (
	"errors"
	"net/http"
)

// Kind classifies a catalog failure.
type Kind int

const (
	// KindUnavailable is an infrastructure failure not caused by caller input.
	KindUnavailable Kind = iota
	// KindValidation means the input violates a required-field or schema rule.
	KindValidation
	// KindMalformedID means the identifier does not have the storage id shape.
	KindMalformedID
	// KindNotFound means the identifier is well formed but no record has it.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMalformedID:
		return "malformed_id"
	case KindNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Code is the machine-readable code written in error bodies.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindMalformedID:
		return "INVALID_ID"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps the kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindMalformedID:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified catalog error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field violations for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match on Kind, so any validation error matches ErrValidation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation  = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrMalformedID = &Error{Kind: KindMalformedID, Message: "Invalid book ID format"}
	ErrNotFound    = &Error{Kind: KindNotFound, Message: "Book not found"}
	ErrUnavailable = &Error{Kind: KindUnavailable, Message: "service unavailable"}
)

// Validation returns a validation error with optional field details.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Unavailable wraps an infrastructure error under a client-safe message.
func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// KindOf classifies err. Errors that carry no *Error are infrastructure failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// AsError returns the *Error in err's chain, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
