// Package errors defines the application error taxonomy shared by the
// API client adapter and the entity stores.
package errors

import (
	"net/http"

	"canopus/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code associated with the error
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is reports whether target is a BaseError with the same business code,
// so detail-carrying copies still match their sentinel under errors.Is.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WithDetails returns a copy of the error carrying detailed information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrValidation is a client-side precondition failure raised before
	// any request is issued.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	// ErrUnauthorized covers 401 responses on authenticated resources.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	// ErrForbidden covers 403 responses.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	// ErrNotFound covers 404 responses.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	// ErrConflict covers 409 responses.
	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	// ErrServer covers any other non-2xx response.
	ErrServer = NewBaseError(
		http.StatusInternalServerError,
		"SERVER_ERROR",
		"server error",
		"",
	)

	// ErrNoSession is returned when an operation requires an
	// authenticated session and none is held.
	ErrNoSession = NewBaseError(
		http.StatusUnauthorized,
		"NO_SESSION",
		"no authenticated session",
		"",
	)
)

// NetworkError represents a transport failure where no HTTP response was
// received at all.
type NetworkError struct {
	err error
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) AppError {
	return &NetworkError{err: err}
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return errors.Wrap(e.err, "request failed").Error()
}

// Unwrap exposes the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *NetworkError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *NetworkError) ErrorCode() string {
	return "NETWORK_ERROR"
}

// Message returns the user-friendly error message
func (e *NetworkError) Message() string {
	return "no response received from server"
}

// Details returns detailed error information
func (e *NetworkError) Details() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

// FromStatus maps an HTTP status code and server message onto the
// taxonomy. Used by the API client to normalize non-2xx responses.
func FromStatus(status int, message string) AppError {
	var base *BaseError
	switch status {
	case http.StatusUnauthorized:
		base = ErrUnauthorized
	case http.StatusForbidden:
		base = ErrForbidden
	case http.StatusNotFound:
		base = ErrNotFound
	case http.StatusConflict:
		base = ErrConflict
	default:
		base = ErrServer
	}
	if message == "" {
		return base
	}

	return base.WithDetails(message)
}
