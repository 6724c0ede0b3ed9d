package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// Reporter accumulates probe results in arrival order. It is purely
// additive: entries are never removed or edited. The resolver creates a
// fresh reporter for every call, so traces never leak between calls.
type Reporter struct {
	mu    sync.RWMutex
	trace domain.Trace
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Record appends a probe result to the trace.
func (r *Reporter) Record(result domain.ProbeResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = append(r.trace, result)
}

// Len returns the number of results recorded so far.
func (r *Reporter) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trace)
}

// Trace returns a copy of the accumulated trace in arrival order.
func (r *Reporter) Trace() domain.Trace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(domain.Trace, len(r.trace))
	copy(out, r.trace)
	return out
}

// Summary renders the trace as human-readable diagnostic text: one line
// per probed candidate followed by a totals line.
func (r *Reporter) Summary() string {
	trace := r.Trace()
	if len(trace) == 0 {
		return "no candidates probed"
	}

	verified := 0
	for _, result := range trace {
		if result.Verified {
			verified++
		}
	}

	var b strings.Builder
	b.WriteString(trace.String())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d candidates probed, %d verified", len(trace), verified)
	return b.String()
}
