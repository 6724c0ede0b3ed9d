package services

import (
	"context"
	"time"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/specfetch-cli/internal/logger"
	"github.com/custodia-labs/specfetch-cli/internal/signature"
)

// Prober vets a single candidate URL: fetch it within a bounded time,
// check the payload signature, retry transport failures up to the
// attempt budget.
type Prober struct {
	transport driven.Transport
	verifier  *signature.Verifier
	policy    domain.ProbePolicy
}

// NewProber creates a prober. Zero or negative policy fields fall back
// to the defaults in the domain package.
func NewProber(transport driven.Transport, verifier *signature.Verifier, policy domain.ProbePolicy) *Prober {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = domain.DefaultMaxAttempts
	}
	if policy.AttemptTimeout <= 0 {
		policy.AttemptTimeout = domain.DefaultAttemptTimeout
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = domain.DefaultBaseDelay
	}
	return &Prober{
		transport: transport,
		verifier:  verifier,
		policy:    policy,
	}
}

// Policy returns the probe policy in effect.
func (p *Prober) Policy() domain.ProbePolicy {
	return p.policy
}

// Probe fetches url and verifies the payload signature.
//
// A fetch that succeeds at the transport level is decisive either way:
// a valid signature confirms the candidate, an invalid one rules it out
// without consuming further attempts. Only transport failures (timeout,
// connection error, non-2xx status) are retried, sleeping
// BaseDelay * attemptNumber between attempts.
func (p *Prober) Probe(ctx context.Context, url string) domain.ProbeResult {
	result := domain.ProbeResult{URL: url}

	for attempt := 1; attempt <= p.policy.MaxAttempts; attempt++ {
		result.Attempts = attempt

		attemptCtx, cancel := context.WithTimeout(ctx, p.policy.AttemptTimeout)
		payload, err := p.transport.Fetch(attemptCtx, url)
		cancel()

		if err == nil {
			result.LastError = ""
			if p.verifier.Valid(payload) {
				logger.Debug("Signature verified: %s (attempt %d)", url, attempt)
				result.Verified = true
				return result
			}
			// The server answered with something other than the expected
			// format, typically an HTML error page served with a 200.
			// A definitive miss for this URL, not a failure: no retry.
			logger.Debug("Signature mismatch: %s (%d bytes)", url, len(payload))
			return result
		}

		result.LastError = err.Error()
		logger.Debug("Attempt %d/%d failed: %s: %v", attempt, p.policy.MaxAttempts, url, err)

		// A cancelled caller also fails the in-flight fetch; stop
		// retrying rather than burning the remaining budget.
		if ctx.Err() != nil {
			return result
		}

		if attempt < p.policy.MaxAttempts && !sleepContext(ctx, time.Duration(attempt)*p.policy.BaseDelay) {
			return result
		}
	}

	return result
}

// sleepContext waits for d or until ctx is cancelled.
// It reports whether the full delay elapsed.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
