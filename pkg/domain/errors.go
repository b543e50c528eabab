package domain

import (
	"errors"
	"fmt"
)

// ErrNoArticles returned when a successful response carries no articles
var ErrNoArticles = errors.New("no articles found")

// ErrNotFound returned by store lookups for absent rows
var ErrNotFound = errors.New("not found")

// TransportError means no response reached the client (network unreachable, timeout, refused).
// Error returns the underlying message unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "network error occurred"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError means the server responded with a non-success status
type ResponseError struct {
	StatusCode int
	Code       string // machine code from the error body, e.g. "rateLimited"
	Message    string // server-provided message
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status code %d", e.StatusCode)
}
