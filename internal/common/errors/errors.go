package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode identifies a failure class for logging and metrics.
type ErrorCode string

const (
	ErrCodeCatalogNotReady      ErrorCode = "CATALOG_NOT_READY"
	ErrCodeCatalogLoadFailed    ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeHumanizationFailed   ErrorCode = "HUMANIZATION_FAILED"
	ErrCodeGenAITimeout         ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIUnavailable     ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeDatabaseConnection   ErrorCode = "DATABASE_CONNECTION_ERROR"
	ErrCodeDatabaseQuery        ErrorCode = "DATABASE_QUERY_ERROR"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors for errors.Is checks at package boundaries.
var (
	// ErrCatalogNotReady is returned while the catalog snapshot has not
	// been warmed yet.
	ErrCatalogNotReady = errors.New("catalog snapshot not ready")
	// ErrNoMatch reports that a lookup legitimately found nothing. It is
	// informational, not a failure.
	ErrNoMatch = errors.New("no matching entry")
)

// StandardError is the structured error carried across service layers.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair and returns the error for chaining.
func (e *StandardError) WithDetail(key string, value interface{}) *StandardError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func newError(code ErrorCode, message string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewCatalogNotReadyError() *StandardError {
	return newError(ErrCodeCatalogNotReady, "catalog snapshot not warmed", true, ErrCatalogNotReady)
}

func NewCatalogLoadError(cause error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "failed to load catalog", true, cause)
}

func NewClassificationError(cause error) *StandardError {
	return newError(ErrCodeClassificationFailed, "intent classification failed", false, cause)
}

func NewHumanizationError(cause error) *StandardError {
	return newError(ErrCodeHumanizationFailed, "answer humanization failed", false, cause)
}

func NewGenAITimeoutError(operation string, cause error) *StandardError {
	e := newError(ErrCodeGenAITimeout, "text generation call timed out", true, cause)
	return e.WithDetail("operation", operation)
}

func NewGenAIUnavailableError(cause error) *StandardError {
	return newError(ErrCodeGenAIUnavailable, "text generation service unavailable", true, cause)
}

func NewDatabaseConnectionError(cause error) *StandardError {
	return newError(ErrCodeDatabaseConnection, "database connection failed", true, cause)
}

func NewDatabaseQueryError(query string, cause error) *StandardError {
	e := newError(ErrCodeDatabaseQuery, "database query failed", true, cause)
	return e.WithDetail("query", query)
}

func NewCacheUnavailableError(cause error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "cache unavailable", true, cause)
}

func NewInvalidRequestError(message string) *StandardError {
	return newError(ErrCodeInvalidRequest, message, false, nil)
}

func NewInternalError(message string, cause error) *StandardError {
	return newError(ErrCodeInternal, message, false, cause)
}

// IsRetryable reports whether the error (or any wrapped StandardError)
// is marked retryable.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// RetryCount returns how many retries a failure class deserves.
func RetryCount(err error) int {
	var se *StandardError
	if !errors.As(err, &se) {
		return 0
	}
	switch se.Code {
	case ErrCodeDatabaseConnection, ErrCodeGenAIUnavailable:
		return 3
	case ErrCodeGenAITimeout, ErrCodeCatalogLoadFailed:
		return 2
	case ErrCodeCacheUnavailable:
		return 1
	default:
		return 0
	}
}
