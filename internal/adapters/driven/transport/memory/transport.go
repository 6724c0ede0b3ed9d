// Package memory provides an in-memory implementation of the Transport
// port. It serves scripted responses for deterministic resolver and
// prober tests: no sockets, no timing jitter.
package memory

import (
	"context"
	"net/http"
	"sync"

	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
)

// Ensure Transport implements the interface.
var _ driven.Transport = (*Transport)(nil)

// Response is one scripted answer for a URL.
type Response struct {
	// Body is returned when Err is nil.
	Body []byte

	// Err is returned instead of a body, simulating a transport failure.
	Err error
}

// Transport is an in-memory implementation of driven.Transport.
//
// Each URL carries an ordered script of responses, consumed one per
// fetch. A URL with an exhausted or missing script answers with a 404
// TransportError, the transport-level shape of a dead candidate. Every
// fetch is recorded in arrival order.
type Transport struct {
	mu       sync.Mutex
	scripts  map[string][]Response
	requests []string
}

// NewTransport creates an empty scripted transport.
func NewTransport() *Transport {
	return &Transport{
		scripts: make(map[string][]Response),
	}
}

// Script appends responses to the script for url.
func (t *Transport) Script(url string, responses ...Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scripts[url] = append(t.scripts[url], responses...)
}

// Fetch serves the next scripted response for url.
func (t *Transport) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, url)

	script := t.scripts[url]
	if len(script) == 0 {
		return nil, &driven.TransportError{
			StatusCode: http.StatusNotFound,
			URL:        url,
		}
	}

	next := script[0]
	t.scripts[url] = script[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return next.Body, nil
}

// Requests returns a copy of every fetched URL in arrival order.
func (t *Transport) Requests() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.requests))
	copy(out, t.requests)
	return out
}

// RequestCount returns the number of fetches performed for url.
func (t *Transport) RequestCount(url string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, r := range t.requests {
		if r == url {
			n++
		}
	}
	return n
}
