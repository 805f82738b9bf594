package ir

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// CodeUnsupportedRefKind: an internal name was requested for a ref kind
	// with no defined mapping.
	CodeUnsupportedRefKind ErrorCode = "unsupported_ref_kind"

	// CodeMalformedType: the graph violates a structural invariant, such as
	// an alias cycle or an argument count that does not match the parameters.
	CodeMalformedType ErrorCode = "malformed_type"

	// CodeNotInnerCapable: a type could not be decomposed into a
	// possibly-inner chain. Always wrapped by CodeMalformedType at the writer.
	CodeNotInnerCapable ErrorCode = "not_inner_capable"

	// CodeUnresolvedSupertype is soft: the fallback name search skips such
	// supertypes and only reports them in logs and details.
	CodeUnresolvedSupertype ErrorCode = "unresolved_supertype"

	CodeInvalidConfig ErrorCode = "invalid_config"
)

// Error is the error envelope returned by the engine. Every Error signals an
// upstream invariant violation rather than a problem in user source code.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]any

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, ir.ErrMalformedType) matches any malformed-type error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// Sentinels for errors.Is matching by code.
var (
	ErrUnsupportedRefKind  = &Error{Code: CodeUnsupportedRefKind}
	ErrMalformedType       = &Error{Code: CodeMalformedType}
	ErrNotInnerCapable     = &Error{Code: CodeNotInnerCapable}
	ErrUnresolvedSupertype = &Error{Code: CodeUnresolvedSupertype}
	ErrInvalidConfig       = &Error{Code: CodeInvalidConfig}
)

// NewError creates a new engine error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new engine error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Err:     e.Err,
	}
}

// Wrap returns a new Error with the given code and message caused by err.
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
