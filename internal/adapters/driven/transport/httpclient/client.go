package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
)

const (
	// DefaultUserAgent is the User-Agent header sent with every request.
	DefaultUserAgent = "specfetch/dev"

	// MaxRedirects caps the redirect chain a single fetch may follow.
	MaxRedirects = 10

	// MaxPayloadSize caps the response body size. Specification documents
	// are single PDFs; anything larger is not the resource we probe for.
	MaxPayloadSize = 32 << 20 // 32 MiB

	// RequestRate is the politeness throttle in requests per second. It
	// keeps a burst of probe retries from hammering the catalog host.
	RequestRate = 5
)

// ErrPayloadTooLarge is returned when a response body exceeds MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("httpclient: response exceeds payload size cap")

// Ensure Client implements the interface.
var _ driven.Transport = (*Client)(nil)

// Client is the real HTTP implementation of driven.Transport.
//
// A fetch performs exactly one GET: retry and backoff policy live in the
// core prober, and deadlines arrive on the request context. A token
// bucket throttles request starts across all fetches through this client.
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxPayload int64
}

// New creates a transport with the default HTTP client.
func New() *Client {
	return NewWithHTTPClient(&http.Client{
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			return nil
		},
	})
}

// NewWithHTTPClient creates a transport over a caller-supplied HTTP
// client. The client should not set its own timeout: per-request
// deadlines are governed by the fetch context.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{
		http:       hc,
		limiter:    rate.NewLimiter(rate.Limit(RequestRate), 1),
		userAgent:  DefaultUserAgent,
		maxPayload: MaxPayloadSize,
	}
}

// SetUserAgent overrides the User-Agent header, typically to include the
// release version.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Fetch retrieves the full body at url.
//
// Non-2xx responses are reported as *driven.TransportError so the prober
// can treat them as retryable transport failures, distinct from a body
// that fails signature verification.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("throttle wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &driven.TransportError{
			StatusCode: resp.StatusCode,
			URL:        url,
		}
	}

	// Read one byte past the cap so an oversized body is detected
	// without buffering it whole.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > c.maxPayload {
		return nil, fmt.Errorf("%w: %s", ErrPayloadTooLarge, url)
	}

	return body, nil
}
