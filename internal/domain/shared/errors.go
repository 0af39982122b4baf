package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the input field that failed validation, if any.
	Field string `json:"field,omitempty"`
	cause error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates an INVALID_INPUT error tied to a field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidInput,
		Message: message,
		Field:   field,
	}
}

// WithCause returns a copy of the error carrying cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	cp := *e
	cp.cause = cause
	return &cp
}

// Error codes shared by the application and HTTP layers.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInvalidState   = "INVALID_STATE"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeUpstream       = "UPSTREAM_ERROR"
	CodeUnavailable    = "UPSTREAM_UNAVAILABLE"
	CodeSessionExpired = "SESSION_EXPIRED"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInternal       = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound       = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput   = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized   = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden      = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState   = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrNotImplemented = NewDomainError(CodeNotImplemented, "Operation is not supported")
	ErrUpstream       = NewDomainError(CodeUpstream, "Accounting service rejected the request")
	ErrUnavailable    = NewDomainError(CodeUnavailable, "Accounting service is unavailable")
	ErrSessionExpired = NewDomainError(CodeSessionExpired, "Session has expired")
)
