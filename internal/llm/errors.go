package llm

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit is a 429. RetryAfter is zero when the provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm: rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm: rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAuth is a rejected API key.
type ErrAuth struct {
	Status int
	Err    error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("llm: credentials rejected with status %d: %v", e.Status, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply without usable text.
type ErrInvalidResponse struct {
	Content string
	Err     error
}

func (e *ErrInvalidResponse) Error() string { return fmt.Sprintf("llm: unusable reply: %v", e.Err) }

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm: provider unavailable"
	}
	return "llm: provider unavailable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off at Request.MaxTokens. Content
// holds the partial text.
type ErrMaxTokensExceeded struct {
	Content string
}

func (e *ErrMaxTokensExceeded) Error() string { return "llm: reply truncated at the token limit" }

// RemoteError is the only error a TextGenerator returns. Purpose names
// the caller that asked for the text.
type RemoteError struct {
	Purpose string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Purpose == "" {
		return "remote generation failed: " + e.Err.Error()
	}
	return fmt.Sprintf("remote generation for %s failed: %v", e.Purpose, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// statusError maps a failed call's HTTP status to an error type. Any other
// status, including 0 for transport failures, is ErrProviderUnavailable.
func statusError(status int, header http.Header, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{Status: status, Err: err}
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header, time.Now()), Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter parses Retry-After as delay seconds or an HTTP date.
func retryAfter(header http.Header, now time.Time) time.Duration {
	v := header.Get("Retry-After")
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}
