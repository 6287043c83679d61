// Package httperr attaches HTTP status codes and user-facing messages to
// errors, so handlers can just return an error.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error that knows what status code it should be served with.
type Error struct {
	code int
	err  error
	// msg is what gets shown to the caller, err is only logged.
	msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %v", e.code, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// WithMessage sets the message shown to the caller, instead of the default
// status text.
func (e *Error) WithMessage(msg string) *Error {
	e.msg = msg
	return e
}

func newErr(code int, format string, args ...interface{}) *Error {
	return &Error{code: code, err: fmt.Errorf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *Error {
	return newErr(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return newErr(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return newErr(http.StatusForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newErr(http.StatusNotFound, format, args...)
}

func MethodNotAllowed(format string, args ...interface{}) *Error {
	return newErr(http.StatusMethodNotAllowed, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return newErr(http.StatusInternalServerError, format, args...)
}

// Extract returns the status code and message to serve for err. Errors that
// weren't created by this package are internal errors, and their details
// aren't shown.
func Extract(err error) (int, string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
	if e.msg != "" {
		return e.code, e.msg
	}
	return e.code, http.StatusText(e.code)
}
