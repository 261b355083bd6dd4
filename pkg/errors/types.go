package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Validation errors
	ErrCodeValidation ErrorCode = "VALIDATION"

	// Conversion errors
	ErrCodeConversionFailed      ErrorCode = "CONVERSION_FAILED"
	ErrCodeUnsupportedMedia      ErrorCode = "UNSUPPORTED_MEDIA"
	ErrCodeTranscoderUnavailable ErrorCode = "TRANSCODER_UNAVAILABLE"
	ErrCodeConversionTimeout     ErrorCode = "CONVERSION_TIMEOUT"

	// External service errors
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE"
	ErrCodeAPIRateLimit    ErrorCode = "API_RATE_LIMIT"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// InternalMessage is the only message a client ever sees for an unexpected failure.
const InternalMessage = "Internal server error"

// ExternalServiceMessage is what a client sees when an upstream dependency fails.
// The service name stays in Details.
const ExternalServiceMessage = "Transcoding service unavailable"

// AppError represents a structured application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	HTTPCode  int                    `json:"-"`
	Retryable bool                   `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// AsRetryable marks the error as transient
func (e *AppError) AsRetryable() *AppError {
	e.Retryable = true
	return e
}

// GetHTTPCode returns the appropriate HTTP status code
func (e *AppError) GetHTTPCode() int {
	if e.HTTPCode != 0 {
		return e.HTTPCode
	}
	return getDefaultHTTPCode(e.Code)
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Newf creates a new AppError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(cause error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(cause error, code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Cause:    cause,
		HTTPCode: getDefaultHTTPCode(code),
	}
}

// getDefaultHTTPCode returns the default HTTP status code for an error code
func getDefaultHTTPCode(code ErrorCode) int {
	switch code {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeAPIRateLimit:
		return http.StatusTooManyRequests
	case ErrCodeConversionTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

// ValidationError creates a client-fault error carrying the message shown to the caller
func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ConversionFailed creates a transcoder failure error
func ConversionFailed(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeConversionFailed, message)
}

// UnsupportedMedia creates an error for input the transcoder cannot read
func UnsupportedMedia(message string, cause error) *AppError {
	return Wrap(cause, ErrCodeUnsupportedMedia, message)
}

// TranscoderUnavailable creates an error for a missing or broken transcoder
func TranscoderUnavailable(backend string, cause error) *AppError {
	return Wrap(cause, ErrCodeTranscoderUnavailable, "Transcoder is not available").
		WithDetail("backend", backend)
}

// ExternalServiceError creates an external service error
func ExternalServiceError(service string, cause error) *AppError {
	return Wrap(cause, ErrCodeExternalService, ExternalServiceMessage).
		WithDetail("service", service)
}

// ConfigError creates a configuration error
func ConfigError(key string, reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("configuration error for '%s': %s", key, reason)).
		WithDetail("key", key).
		WithDetail("reason", reason)
}

// TimeoutError creates a conversion timeout error
func TimeoutError(operation string, timeout string) *AppError {
	return New(ErrCodeConversionTimeout, fmt.Sprintf("%s timed out after %s", operation, timeout)).
		WithDetail("operation", operation).
		WithDetail("timeout", timeout)
}

// RateLimitError creates a rate limit error
func RateLimitError(resource string) *AppError {
	return New(ErrCodeAPIRateLimit, "Too many conversion requests. Please retry shortly").
		WithDetail("resource", resource)
}

// Internal wraps an unexpected failure; its message is always InternalMessage
func Internal(cause error) *AppError {
	return Wrap(cause, ErrCodeInternal, InternalMessage)
}

// As extracts an AppError from an error chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is checks if an error is of a specific type
func Is(err error, code ErrorCode) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsRetryable reports whether the error was marked transient
func IsRetryable(err error) bool {
	if appErr, ok := As(err); ok {
		return appErr.Retryable
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// GetHTTPCode extracts the HTTP status code from an error
func GetHTTPCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.GetHTTPCode()
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to send to a client
func PublicMessage(err error) string {
	appErr, ok := As(err)
	if !ok || appErr.Code == ErrCodeInternal || appErr.Message == "" {
		return InternalMessage
	}
	return appErr.Message
}
