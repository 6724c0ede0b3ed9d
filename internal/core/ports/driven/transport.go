package driven

import (
	"context"
	"errors"
	"fmt"
)

// Transport fetches the full body of a candidate URL.
//
// A single call performs one network attempt: retry and backoff policy
// live in the core, not in the transport. Implementations must honour
// context cancellation and deadlines, and must return the complete
// response body on success.
type Transport interface {
	// Fetch retrieves the body at url. A non-2xx response is reported
	// as a *TransportError so callers can distinguish server rejections
	// from connection failures.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TransportError reports an HTTP response that carried a non-success
// status code. The request reached a server; the server declined it.
type TransportError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// URL is the candidate URL that was fetched.
	URL string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsTransportError checks if an error is a TransportError and returns it.
func IsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
