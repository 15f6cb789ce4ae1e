// Package apperr defines the domain errors returned by services and rendered
// by the HTTP error middleware.
//
//	if exists {
//	    return apperr.AlreadyExists("recipe is already in favorites")
//	}
//
//	if errors.Is(err, apperr.ErrNotFound) { ... }
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable category of an error.
type Kind string

const (
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindNotFound         Kind = "NOT_FOUND"
	KindEmptyCart        Kind = "EMPTY_CART"
	KindPermissionDenied Kind = "PERMISSION_DENIED"
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindRateLimited      Kind = "RATE_LIMITED"
	KindInternal         Kind = "INTERNAL"
)

// HTTPStatus returns the status code a Kind is rendered with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindAlreadyExists, KindEmptyCart:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a kind, message and optional details.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// HTTPStatus returns the status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// WithDetails returns a copy carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists, Message: "already exists"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrEmptyCart        = &Error{Kind: KindEmptyCart, Message: "shopping cart is empty"}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied, Message: "permission denied"}
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrRateLimited      = &Error{Kind: KindRateLimited, Message: "rate limit exceeded"}
	ErrInternal         = &Error{Kind: KindInternal, Message: "internal server error"}
)

func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// InvalidField reports a problem with one named input field.
func InvalidField(field, msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Details: map[string]string{field: msg}}
}

func AlreadyExists(msg string) *Error {
	return &Error{Kind: KindAlreadyExists, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func EmptyCart(msg string) *Error {
	return &Error{Kind: KindEmptyCart, Message: msg}
}

func PermissionDenied(msg string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func RateLimited(msg string) *Error {
	return &Error{Kind: KindRateLimited, Message: msg}
}

// Internal wraps an infrastructure failure. The cause is logged, never rendered.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
