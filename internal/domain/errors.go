package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeStore         = "STORE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptySearchTerm      = NewDomainError(ErrCodeValidation, "search term is required")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
)

// Not found errors
var (
	ErrUserNotFound    = NewDomainError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound = NewDomainError(ErrCodeNotFound, "session not found")
)

// Authorization errors
var (
	ErrNotAuthenticated = NewDomainError(ErrCodeUnauthorized, "please log in to access this resource")
	ErrSessionExpired   = NewDomainError(ErrCodeUnauthorized, "session has expired")
)

// NewUpstreamError wraps a failure from the image search provider.
func NewUpstreamError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeUpstream, "failed to fetch images", err)
}

// NewStoreError wraps a persistence layer failure.
func NewStoreError(op string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStore, op+" failed", err)
}
