package graphql

import (
	"errors"
	"fmt"
)

// Machine-readable error codes surfaced in the "code" extension of GraphQL
// error entries.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeBatchFetchFailure = "BATCH_FETCH_FAILURE"
	CodeScalarCoercion    = "SCALAR_COERCION_ERROR"
)

// Error is a resolver error with a machine code. It implements the
// gqlerrors extended-error contract so the code reaches clients.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Extensions exposes the code to the GraphQL error formatter.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// ErrUnauthenticated is returned when an operation requires an identity and
// the request carries none.
var ErrUnauthenticated = &Error{Code: CodeUnauthenticated, Message: "authentication required"}

// NewForbidden reports an identity whose role is insufficient.
func NewForbidden(required string) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf("role %q required", required)}
}

// NewInvalidInput reports missing or malformed mutation arguments, caught
// before any repository call.
func NewInvalidInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given gateway error code.
func IsCode(err error, code string) bool {
	var gw *Error
	if errors.As(err, &gw) {
		return gw.Code == code
	}
	return false
}
