// Package errors carries coded application errors and their HTTP mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of failure in API responses.
type ErrorCode string

const (
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrCodeDatabaseQuery      ErrorCode = "DATABASE_QUERY"

	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Open Library failures
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
	ErrCodeAPITimeout      ErrorCode = "API_TIMEOUT"
	ErrCodeAPIRateLimit    ErrorCode = "API_RATE_LIMIT"

	ErrCodeInternal    ErrorCode = "INTERNAL"
	ErrCodeServiceDown ErrorCode = "SERVICE_DOWN"
)

var httpCodes = map[ErrorCode]int{
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeAPIRateLimit:    http.StatusTooManyRequests,
	ErrCodeAPITimeout:      http.StatusGatewayTimeout,
	ErrCodeServiceDown:     http.StatusServiceUnavailable,
	ErrCodeExternalService: http.StatusBadGateway,
	ErrCodeInvalidResponse: http.StatusBadGateway,
}

// AppError is an error with a code, a user-facing message and optional
// details for the response body.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// GetHTTPCode maps the code to a status, 500 when unmapped.
func (e *AppError) GetHTTPCode() int {
	if code, ok := httpCodes[e.Code]; ok {
		return code
	}
	return http.StatusInternalServerError
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap is New with a cause.
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func NotFound(resource string, id any) *AppError {
	return New(ErrCodeNotFound, resource+" not found").
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// ValidationError reports a bad form field. The reason is shown to the user
// as-is.
func ValidationError(field string, reason string) *AppError {
	return New(ErrCodeValidation, reason).WithDetail("field", field)
}

func DatabaseError(operation string, cause error) *AppError {
	return Wrap(cause, ErrCodeDatabaseQuery, "database "+operation+" failed").
		WithDetail("operation", operation)
}

func RateLimitError(resource string, limit string) *AppError {
	return New(ErrCodeAPIRateLimit, fmt.Sprintf("rate limit exceeded for '%s': %s", resource, limit)).
		WithDetail("resource", resource).
		WithDetail("limit", limit)
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries an AppError with code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// GetHTTPCode is the status for any error, 500 for uncoded ones.
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}
