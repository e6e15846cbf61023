// Package apperror defines the typed failures returned by services and how
// they map onto HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindNoop         Kind = "noop"
	KindUpdateFailed Kind = "update_failed"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUpstream     Kind = "upstream"
	KindUnsupported  Kind = "unsupported"
)

// Error is a failure carrying a kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	return StatusOf(e.Kind)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Noop(message string) *Error         { return New(KindNoop, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }

func UpdateFailed(message string) *Error { return New(KindUpdateFailed, message) }
func Unsupported(message string) *Error  { return New(KindUnsupported, message) }

func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

// WithDetails attaches structured context that is rendered in the response errors field.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// KindOf returns the kind of err, or KindUpstream for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUpstream
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func IsNotFound(err error) bool { return Is(err, KindNotFound) }
func IsConflict(err error) bool { return Is(err, KindConflict) }

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindNoop:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
