package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoggedIn is returned when the catalog answers 401. Callers redirect
	// to the login page instead of reporting it.
	ErrNotLoggedIn = errors.New("user not logged in")

	// ErrSameSortFields rejects a sort selection whose primary and secondary fields match.
	ErrSameSortFields = errors.New("primary and secondary sort fields cannot be the same")

	// ErrMalformedPayload is returned when a response body is not the expected JSON.
	ErrMalformedPayload = errors.New("malformed server response")

	// ErrConfirmationRequired is returned when an action needs the user's confirmation first.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrNotFound is returned when the catalog has no record for the requested id.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-successful catalog response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! Status: %d", e.Status)
	}
	return fmt.Sprintf("HTTP error! Status: %d - %s", e.Status, e.Message)
}

// Is reports a 401 as ErrNotLoggedIn so callers can branch on the sentinel
// while still reading the server message.
func (e *APIError) Is(target error) bool {
	return target == ErrNotLoggedIn && e.Status == 401
}

// ServerError is a failure reported inside a successful response body,
// either as an "error" field or as status "fail".
type ServerError struct {
	Message string
	Detail  string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Detail == "" {
		return "Server error: " + e.Message
	}
	return fmt.Sprintf("Server error: %s - %s", e.Message, e.Detail)
}

// MalformedPayloadError wraps ErrMalformedPayload with the raw body for diagnostics.
type MalformedPayloadError struct {
	Body string
	Err  error
}

// Error implements the error interface.
func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedPayload.Error(), e.Err)
}

// Unwrap lets errors.Is match ErrMalformedPayload.
func (e *MalformedPayloadError) Unwrap() []error {
	return []error{ErrMalformedPayload, e.Err}
}

// ServerMessage returns the message a failed response carried, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return srvErr.Message
	}
	return ""
}
