package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTimeout      = errors.New("backend request timed out")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrUnauthorized = errors.New("backend rejected the session")
	ErrForbidden    = errors.New("backend refused the action")
	ErrNotFound     = errors.New("resource not found")
	ErrBadRequest   = errors.New("backend rejected the request")
	ErrPayment      = errors.New("payment processor rejected the request")
	ErrRemote       = errors.New("backend error")
)

// RemoteError is a non-2xx answer from the backend.
type RemoteError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap lets callers match on the sentinel for the status class.
func (e *RemoteError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusPaymentRequired:
		return ErrPayment
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrBadRequest
	default:
		return ErrRemote
	}
}

// IsRetryable reports whether repeating the same action may succeed.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return true
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode >= 500 || re.StatusCode == http.StatusTooManyRequests
	}
	return false
}
