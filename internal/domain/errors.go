package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited signals the remote asked for backoff (HTTP 429).
	ErrRateLimited = errors.New("rate limited")
	// ErrTimeout signals no response arrived within the per-attempt budget.
	ErrTimeout = errors.New("request timeout")
	// ErrRemote signals a non-retryable remote failure.
	ErrRemote = errors.New("remote error")
	// ErrUnauthorized signals a rejected credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable signals the provider circuit is open.
	ErrUnavailable = errors.New("provider unavailable")
)

// RemoteStatusError wraps ErrRemote with the HTTP status the provider returned.
type RemoteStatusError struct {
	StatusCode int
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrRemote.Error(), e.StatusCode)
}

func (e *RemoteStatusError) Unwrap() error { return ErrRemote }

// NewRemoteStatus creates a remote status error.
func NewRemoteStatus(statusCode int) error {
	return &RemoteStatusError{StatusCode: statusCode}
}

// RetriesExhaustedError wraps the last transient failure once the attempt
// budget is spent. It matches ErrRemote so callers treat it as terminal.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("%s: retries exhausted after %d attempts: %v",
		ErrRemote.Error(), e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error { return ErrRemote }

// NewRetriesExhausted creates a terminal error from the last transient failure.
func NewRetriesExhausted(attempts int, last error) error {
	return &RetriesExhaustedError{Attempts: attempts, Last: last}
}
