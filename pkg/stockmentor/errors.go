package stockmentor

import (
	"errors"
	"fmt"
)

// ErrorCode defines error classification codes for structured error handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeDuplicate    ErrorCode = "DUPLICATE"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors for outbound data conditions. Use errors.Is() to check.
var (
	// ErrNoData indicates the market-data provider returned no rows for the
	// symbol and range. Distinct from a transport failure.
	ErrNoData = errors.New("no price data available")
	// ErrSymbolNotFound indicates the provider does not know the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrSessionExpired indicates a bearer token that is no longer valid.
	ErrSessionExpired = errors.New("session expired")
)

// Error represents a structured error with classification code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with classification code and additional context.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the classification code from an error chain.
// Sentinel data errors map onto NOT_FOUND; everything unclassified is internal.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, ErrNoData) || errors.Is(err, ErrSymbolNotFound) {
		return ErrCodeNotFound
	}
	if errors.Is(err, ErrSessionExpired) {
		return ErrCodeUnauthorized
	}
	return ErrCodeInternal
}
