// Package domainerrors carries coded errors from the domain and service layers
// to the transport boundary. Handlers map codes to status codes; the message is
// safe to show to callers unless the code is CodeInternal.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for the transport boundary.
type Code string

const (
	// CodeValidation reports a violated domain invariant or bad input.
	CodeValidation Code = "validation"
	// CodeLimitExceeded reports a capacity limit; reported to callers as a validation failure.
	CodeLimitExceeded Code = "limit_exceeded"
	CodeNotFound      Code = "not_found"
	// CodeInvalidState reports an operation the current status or state disallows.
	CodeInvalidState Code = "invalid_state"
	CodeConflict     Code = "conflict"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
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

// New creates a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As returns the outermost coded error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost coded error, or CodeInternal.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in the chain has code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is reports whether err is a coded error carrying any of codes.
func Is(err error, codes ...Code) bool {
	de, ok := As(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if de.Code == c {
			return true
		}
	}
	return false
}

// IsValidation treats limit violations as validation failures.
func IsValidation(err error) bool {
	return Is(err, CodeValidation, CodeLimitExceeded)
}
