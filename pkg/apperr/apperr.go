// Package apperr classifies business errors so adapters can map them to
// transport codes without knowing every domain sentinel.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal            Kind = "internal"
	KindValidation          Kind = "validation"
	KindBadRequest          Kind = "bad_request"
	KindNotFound            Kind = "not_found"
	KindInsufficientBalance Kind = "insufficient_balance"
	KindConflict            Kind = "conflict"
	KindUnauthorized        Kind = "unauthorized"
)

// Error is a classified business error. Message is safe to show to callers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a classified error, keeping errors.Is(err, base) true.
func Wrap(base *Error, cause error) error {
	if cause == nil {
		return base
	}
	return fmt.Errorf("%w: %w", base, cause)
}

// Conflict marks a storage-level abort (lock wait timeout, deadlock) as retryable.
func Conflict(cause error) error {
	return &Error{
		Kind:    KindConflict,
		Code:    "TX_CONFLICT",
		Message: "concurrent update, please retry",
		Err:     cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message of err, or fallback for unclassified errors.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return fallback
}
