package source

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidName rejects document names that are empty, absolute or
	// escape the source root.
	ErrInvalidName = errors.New("invalid document name")
	// ErrNotFound matches any retrieval of a document that does not exist.
	ErrNotFound = errors.New("document not found")
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fetch %s: unexpected status %d %s: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes errors.Is(err, ErrNotFound) hold for 404 and 410 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && (e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || (e.StatusCode >= 500 && e.StatusCode <= 599)
}

// UnreachableError indicates the remote host could not be reached.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "unreachable"
	}
	if e.Host != "" {
		return fmt.Sprintf("source unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("source unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }
