package domain

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionCorrupt  = errors.New("session record is corrupt")
	ErrSessionExpired  = errors.New("session has expired")
)

// Controller errors
var (
	ErrOperationInFlight = errors.New("another session operation is in flight")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInvalidTransition = errors.New("operation not valid in current state")
)

// Location errors
var (
	ErrCountryNotSelected = errors.New("country not selected")
	ErrStateNotSelected   = errors.New("state not selected")
)

// APIError is a non-2xx response from the backend, carrying the
// server-supplied error or message field when the body parsed as JSON.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds the error for a failed call. An empty message means
// the body was not parseable JSON; fall back to the generic status line.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", status)
	}
	return &APIError{Status: status, Message: message}
}

// IsUnauthorized reports whether err is an HTTP 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 401
}
