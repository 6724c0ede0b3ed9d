package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultMaxAttempts is the retry budget per candidate URL.
	DefaultMaxAttempts = 3

	// DefaultAttemptTimeout bounds a single probe fetch. Short on purpose:
	// a probe only rules a URL in or out.
	DefaultAttemptTimeout = 5 * time.Second

	// DefaultBaseDelay is the backoff unit between failed probe attempts.
	DefaultBaseDelay = time.Second

	// DefaultTransferTimeout bounds the committed download of a verified
	// candidate. Longer than the probe timeout: the transfer runs once,
	// on a URL already confirmed correct.
	DefaultTransferTimeout = 10 * time.Second
)

// ProbePolicy bounds the verification attempts for a single candidate URL.
type ProbePolicy struct {
	// MaxAttempts is the maximum number of fetches per candidate.
	MaxAttempts int

	// AttemptTimeout bounds each individual fetch.
	AttemptTimeout time.Duration

	// BaseDelay is the backoff unit. The wait before attempt n+1 is
	// BaseDelay * n (linear backoff).
	BaseDelay time.Duration
}

// DefaultProbePolicy returns the standard probe policy.
func DefaultProbePolicy() ProbePolicy {
	return ProbePolicy{
		MaxAttempts:    DefaultMaxAttempts,
		AttemptTimeout: DefaultAttemptTimeout,
		BaseDelay:      DefaultBaseDelay,
	}
}

// ProbeResult records the verdict for one candidate URL.
// It is immutable once appended to a Trace.
type ProbeResult struct {
	// URL is the concrete candidate that was probed.
	URL string

	// Verified reports whether the candidate served a correctly
	// signed document.
	Verified bool

	// Attempts is the number of fetches performed (starts at 1).
	Attempts int

	// LastError describes the final transport failure. Empty when the
	// last attempt succeeded at the transport level.
	LastError string
}

// String renders the result as a single diagnostic line.
func (r ProbeResult) String() string {
	verdict := "miss"
	if r.Verified {
		verdict = "verified"
	}
	if r.LastError != "" {
		return fmt.Sprintf("%s %s (%d attempts): %s", verdict, r.URL, r.Attempts, r.LastError)
	}
	return fmt.Sprintf("%s %s (%d attempts)", verdict, r.URL, r.Attempts)
}

// Trace is the ordered sequence of probe results for one resolution call,
// in arrival order. It is purely additive: entries are never removed or
// edited.
type Trace []ProbeResult

// String renders the trace as human-readable diagnostic text,
// one numbered line per probed candidate.
func (t Trace) String() string {
	if len(t) == 0 {
		return "no candidates probed"
	}
	lines := make([]string, len(t))
	for i, r := range t {
		lines[i] = fmt.Sprintf("%2d. %s", i+1, r.String())
	}
	return strings.Join(lines, "\n")
}
