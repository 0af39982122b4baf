package dto

import (
	"net/http"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

// Error codes raised by the HTTP layer itself. Everything else reuses the
// domain codes from the shared package.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	ErrCodeRouteNotFound    = "ROUTE_NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:       http.StatusNotFound,
	shared.CodeInvalidInput:   http.StatusBadRequest,
	shared.CodeUnauthorized:   http.StatusUnauthorized,
	shared.CodeSessionExpired: http.StatusUnauthorized,
	shared.CodeForbidden:      http.StatusForbidden,
	shared.CodeInvalidState:   http.StatusUnprocessableEntity,
	shared.CodeNotImplemented: http.StatusNotImplemented,
	shared.CodeUpstream:       http.StatusBadGateway,
	shared.CodeUnavailable:    http.StatusServiceUnavailable,
	shared.CodeRateLimited:    http.StatusTooManyRequests,
	shared.CodeInternal:       http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeRouteNotFound:    http.StatusNotFound,
	ErrCodeMethodNotAllowed: http.StatusMethodNotAllowed,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are treated as internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewLocalizedError builds an error response whose message is translated by
// loc. The original message is kept in Details when it differs.
func NewLocalizedError(loc *i18n.Localizer, code, message, field, requestID string) Response {
	resp := NewErrorResponse(code, loc.Error(code, message))
	resp.Error.Field = field
	resp.Error.RequestID = requestID
	if resp.Error.Message != message {
		resp.Error.Details = message
	}
	return resp
}
