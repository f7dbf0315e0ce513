// Package domainerrors carries a stable failure category through the service
// layers. Transports map the category to their own status codes.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a failure in business terms.
type Code string

// Request and caller problems.
const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_failed"
	CodeInvariantViolation Code = "invariant_violation"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
)

// Licensing store outcomes.
const (
	CodeLicenseRejected    Code = "license_rejected"
	CodeServiceUnavailable Code = "service_unavailable"
	CodeTimeout            Code = "timeout"
)

// CodeInternal is the category of anything unclassified.
const CodeInternal Code = "internal_error"

// Error is a categorised failure. Message is safe to show to callers; the
// wrapped Err is not.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches msg to err. A code already present in err's chain wins over
// code so the first classification is never lost.
func Wrap(err error, code Code, msg string) error {
	if c, ok := lookup(err); ok {
		code = c
	}
	return &Error{Code: code, Message: msg, Err: err}
}

func HasCode(err error, code Code) bool {
	c, ok := lookup(err)
	return ok && c == code
}

// CodeOf returns err's code, or CodeInternal for unclassified errors.
func CodeOf(err error) Code {
	if c, ok := lookup(err); ok {
		return c
	}
	return CodeInternal
}

// Temporary reports whether retrying the operation later may succeed.
func Temporary(err error) bool {
	switch CodeOf(err) {
	case CodeServiceUnavailable, CodeTimeout:
		return true
	}
	return false
}

func lookup(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
