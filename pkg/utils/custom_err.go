package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrDatabaseError     = errors.New("database error")
	ErrItineraryNotFound = errors.New("itinerary not found")

	// ErrMissingAPIKey is the credential failure: no usable key is
	// configured, so the gateway refuses before any network attempt.
	// It is fatal and never retried.
	ErrMissingAPIKey = errors.New("no usable AI API key configured")
)

// TransientError wraps transport-level failures (network, timeout, 5xx).
// The gateway retries these with backoff.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// MalformedResponseError wraps responses that came back but could not be
// used: no candidates, or structured output that failed to parse. Retried
// like transport errors; past the last attempt it becomes a chunk failure.
type MalformedResponseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed AI response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func IsCredentialErr(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

func IsTransientErr(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

func IsMalformedErr(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// IsRetryableErr reports whether the gateway should try again.
func IsRetryableErr(err error) bool {
	return IsTransientErr(err) || IsMalformedErr(err)
}
