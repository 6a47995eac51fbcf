// Package errors defines the application error taxonomy shared by every
// layer. Endpoint handlers translate these into the fixed JSON shapes of
// the public API.
package errors

import (
	"net/http"

	"passport/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
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

// Is matches errors by business error code, so derived errors built
// with WithDetails still compare equal to their predefined base.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
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

// WithDetails adds detailed error information
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
	// ErrUnauthenticated: no credential was presented at all.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"No authentication credential provided",
		"",
	)

	// ErrInvalidCredential: a credential was presented but is malformed,
	// expired, or carries a bad signature. Covers both identity tokens
	// and session credentials.
	ErrInvalidCredential = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIAL",
		"Invalid or expired credential",
		"",
	)

	// ErrAccessDenied: the identity verified but policy refuses it for
	// the requesting application. Details carries the human-readable
	// denial reason naming the required email suffix.
	ErrAccessDenied = NewBaseError(
		http.StatusForbidden,
		"ACCESS_DENIED",
		"Access Denied: your account is not permitted to use this application",
		"",
	)

	// ErrUpstreamUnavailable: the identity provider or the central auth
	// server could not be reached within the call timeout.
	ErrUpstreamUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"UPSTREAM_UNAVAILABLE",
		"Authentication service temporarily unavailable",
		"",
	)

	// Legacy local scheme errors.
	ErrInvalidLoginCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// Response is the envelope the error middleware emits for errors that
// escape a handler unconverted.
type Response struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
