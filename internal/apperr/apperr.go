// Package apperr defines the error kinds surfaced by the training analytics core
// and their mapping to HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindPersistence  Kind = "persistence_failure"
	KindInternal     Kind = "internal_error"
)

// Error carries a kind and a machine readable reason. Err is the optional cause.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Reason == "" && e.Err == nil:
		return string(e.Kind)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Reason, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.ErrForbidden) works
// regardless of reason.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation   = &Error{Kind: KindValidation}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrInvalidState = &Error{Kind: KindInvalidState}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrPersistence  = &Error{Kind: KindPersistence}
)

func Validation(reason string) error {
	return &Error{Kind: KindValidation, Reason: reason}
}

func NotFound(reason string) error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

func Forbidden(reason string) error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

func InvalidState(reason string) error {
	return &Error{Kind: KindInvalidState, Reason: reason}
}

func Conflict(reason string) error {
	return &Error{Kind: KindConflict, Reason: reason}
}

func Persistence(reason string, cause error) error {
	return &Error{Kind: KindPersistence, Reason: reason, Err: cause}
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ReasonOf returns the reason of the first *Error in the chain.
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidState, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
