package xts

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client. Callers match them with errors.Is.
var (
	// ErrUnavailable means the endpoint could not be reached.
	ErrUnavailable = errors.New("xts: service unavailable")
	// ErrUnauthorized means the endpoint rejected the credentials.
	ErrUnauthorized = errors.New("xts: unauthorized")
	// ErrRequestFailed means the endpoint answered with an error.
	ErrRequestFailed = errors.New("xts: request failed")
	// ErrInvalidResponse means the body could not be understood.
	ErrInvalidResponse = errors.New("xts: invalid response")
	// ErrNotFound means a get returned no object for the requested id.
	ErrNotFound = errors.New("xts: object not found")
)

// ErrConfigMissingEndpoint is returned by Config.Validate.
var ErrConfigMissingEndpoint = errors.New("xts: endpoint is required")

// RemoteError is an error reported by the endpoint itself.
type RemoteError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *RemoteError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("xts: %s: %s", e.Code, e.Description)
	case e.Description != "":
		return "xts: " + e.Description
	default:
		return fmt.Sprintf("xts: HTTP %d", e.StatusCode)
	}
}

// Unwrap lets errors.Is(err, ErrRequestFailed) match.
func (e *RemoteError) Unwrap() error {
	return ErrRequestFailed
}

// outcome labels a call result for metrics.
func outcome(err error) string {
	var remote *RemoteError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &remote):
		return "remote_error"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
