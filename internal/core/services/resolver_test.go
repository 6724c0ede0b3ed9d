package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driven/transport/memory"
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/signature"
)

// testGroups mirrors the shipped configuration: two templates per
// generation, primary probed before secondary.
func testGroups() []domain.TemplateGroup {
	return []domain.TemplateGroup{
		{
			Name: "primary",
			Templates: []domain.Template{
				"https://catalog.test/api/v2/products/{id}/specification.pdf",
				"https://catalog.test/api/v2/documents/{id}.pdf",
			},
		},
		{
			Name: "secondary",
			Templates: []domain.Template{
				"https://catalog.test/api/v1/specs/{id}.pdf",
				"https://catalog.test/api/v1/pdf/spec_{id}.pdf",
			},
		},
	}
}

// expandAll returns every candidate URL for id in probe order.
func expandAll(groups []domain.TemplateGroup, id domain.Identifier) []string {
	var urls []string
	for _, g := range groups {
		for _, t := range g.Templates {
			urls = append(urls, t.Expand(id))
		}
	}
	return urls
}

func newTestResolver(transport *memory.Transport, groups []domain.TemplateGroup) *ResolverService {
	prober := NewProber(transport, signature.PDF(), testPolicy())
	return NewResolverService(transport, prober, groups)
}

// TestResolverService_Resolve_InvalidIdentifier tests that malformed
// input is rejected before any network call.
func TestResolverService_Resolve_InvalidIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "91140151083"},
		{"too long", "9114015108321"},
		{"letters", "91140151O832"},
		{"separators", "9114-0151-0832"},
		{"whitespace", "911401510832 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := memory.NewTransport()
			resolver := newTestResolver(transport, testGroups())

			outcome, err := resolver.Resolve(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, domain.StatusInvalidIdentifier, outcome.Status)
			assert.True(t, outcome.Failed())
			assert.Empty(t, outcome.Trace)
			assert.Empty(t, transport.Requests(), "no network call for invalid input")
		})
	}
}

// TestResolverService_Resolve_FirstTemplateHit covers the first spec
// scenario: the primary group's first template serves a valid PDF on
// the first attempt.
func TestResolverService_Resolve_FirstTemplateHit(t *testing.T) {
	groups := testGroups()
	first := "https://catalog.test/api/v2/products/911401510832/specification.pdf"
	transport := memory.NewTransport()
	transport.Script(first,
		memory.Response{Body: pdfPayload}, // probe
		memory.Response{Body: pdfPayload}, // transfer
	)
	resolver := newTestResolver(transport, groups)

	outcome, err := resolver.Resolve(context.Background(), "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFound, outcome.Status)
	assert.False(t, outcome.Failed())

	require.NotNil(t, outcome.Document)
	assert.Equal(t, first, outcome.Document.SourceURL)
	assert.Equal(t, "911401510832_specification.pdf", outcome.Document.Filename)
	assert.Equal(t, pdfPayload, outcome.Document.Payload)
	assert.Equal(t, domain.Identifier("911401510832"), outcome.Document.Identifier)
	assert.False(t, outcome.Document.Retrieved.IsZero())

	require.Len(t, outcome.Trace, 1)
	assert.True(t, outcome.Trace[0].Verified)
	assert.Equal(t, 1, outcome.Trace[0].Attempts)
	assert.Equal(t, first, outcome.Trace[0].URL)
}

// TestResolverService_Resolve_AllCandidatesMiss covers the second spec
// scenario: every candidate answers with HTML, so resolution exhausts
// both groups and reports NotFound.
func TestResolverService_Resolve_AllCandidatesMiss(t *testing.T) {
	groups := testGroups()
	transport := memory.NewTransport()
	candidates := expandAll(groups, "000000000000")
	for _, url := range candidates {
		transport.Script(url, memory.Response{Body: htmlPayload})
	}
	resolver := newTestResolver(transport, groups)

	outcome, err := resolver.Resolve(context.Background(), "000000000000")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotFound, outcome.Status)
	assert.Equal(t, domain.NotFoundMessage, outcome.Message)
	assert.Nil(t, outcome.Document)

	require.Len(t, outcome.Trace, len(candidates))
	for i, result := range outcome.Trace {
		assert.Equal(t, candidates[i], result.URL, "trace order must match declaration order")
		assert.False(t, result.Verified)
		assert.Equal(t, 1, result.Attempts, "a signature miss must not be retried")
	}
}

// TestResolverService_Resolve_SecondCandidateAfterTimeouts covers the
// third spec scenario: the first candidate fails transport on every
// attempt, the second serves a PDF immediately.
func TestResolverService_Resolve_SecondCandidateAfterTimeouts(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "123456789012")
	transport := memory.NewTransport()
	transport.Script(candidates[0],
		memory.Response{Err: errors.New("connect timeout")},
		memory.Response{Err: errors.New("connect timeout")},
		memory.Response{Err: errors.New("connect timeout")},
	)
	transport.Script(candidates[1],
		memory.Response{Body: pdfPayload}, // probe
		memory.Response{Body: pdfPayload}, // transfer
	)
	resolver := newTestResolver(transport, groups)

	outcome, err := resolver.Resolve(context.Background(), "123456789012")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFound, outcome.Status)
	require.NotNil(t, outcome.Document)
	assert.Equal(t, candidates[1], outcome.Document.SourceURL)

	require.Len(t, outcome.Trace, 2)
	assert.False(t, outcome.Trace[0].Verified)
	assert.Equal(t, 3, outcome.Trace[0].Attempts)
	assert.Equal(t, "connect timeout", outcome.Trace[0].LastError)
	assert.True(t, outcome.Trace[1].Verified)
	assert.Equal(t, 1, outcome.Trace[1].Attempts)
}

// TestResolverService_Resolve_ThirdCandidateWins tests that probing
// walks candidates in declared order and stops at the first verified
// one.
func TestResolverService_Resolve_ThirdCandidateWins(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")
	transport := memory.NewTransport()
	transport.Script(candidates[0], memory.Response{Body: htmlPayload})
	transport.Script(candidates[1], memory.Response{Body: htmlPayload})
	transport.Script(candidates[2],
		memory.Response{Body: pdfPayload},
		memory.Response{Body: pdfPayload},
	)
	resolver := newTestResolver(transport, groups)

	outcome, err := resolver.Resolve(context.Background(), "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFound, outcome.Status)
	assert.Equal(t, candidates[2], outcome.Document.SourceURL)

	require.Len(t, outcome.Trace, 3)
	for i := range outcome.Trace {
		assert.Equal(t, candidates[i], outcome.Trace[i].URL)
	}
	assert.Zero(t, transport.RequestCount(candidates[3]), "candidates after the hit must not be probed")
}

// TestResolverService_Resolve_TransferFailed tests that a verified
// candidate whose committed download fails reports TransferFailed, not
// NotFound.
func TestResolverService_Resolve_TransferFailed(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")
	transport := memory.NewTransport()
	transport.Script(candidates[0],
		memory.Response{Body: pdfPayload},              // probe succeeds
		memory.Response{Err: errors.New("conn reset")}, // transfer fails
	)
	resolver := newTestResolver(transport, groups)

	outcome, err := resolver.Resolve(context.Background(), "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusTransferFailed, outcome.Status)
	assert.Nil(t, outcome.Document)
	assert.Contains(t, outcome.Message, candidates[0])
	assert.Contains(t, outcome.Message, "conn reset")
	require.Len(t, outcome.Trace, 1)
	assert.True(t, outcome.Trace[0].Verified)
}

// TestResolverService_Resolve_Idempotent tests that two resolutions of
// the same identifier over identical scripts yield identical outcomes.
func TestResolverService_Resolve_Idempotent(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")

	run := func() *domain.Outcome {
		transport := memory.NewTransport()
		transport.Script(candidates[0], memory.Response{Body: htmlPayload})
		transport.Script(candidates[1],
			memory.Response{Body: pdfPayload},
			memory.Response{Body: pdfPayload},
		)
		resolver := newTestResolver(transport, groups)

		outcome, err := resolver.Resolve(context.Background(), "911401510832")
		require.NoError(t, err)
		return outcome
	}

	first := run()
	second := run()

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.Document.SourceURL, second.Document.SourceURL)
	assert.Equal(t, first.Document.Payload, second.Document.Payload)
}

// TestResolverService_Resolve_CancelledBetweenCandidates tests
// cooperative cancellation: the trace keeps what was probed and the
// status is Cancelled, not NotFound.
func TestResolverService_Resolve_CancelledBetweenCandidates(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")
	transport := memory.NewTransport()
	for _, url := range candidates {
		transport.Script(url, memory.Response{Body: htmlPayload})
	}
	resolver := newTestResolver(transport, groups)

	ctx, cancel := context.WithCancel(context.Background())
	resolver.SetProbeListener(func(domain.ProbeResult) {
		cancel() // cancel as soon as the first result lands
	})

	outcome, err := resolver.Resolve(ctx, "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, outcome.Status)
	require.Len(t, outcome.Trace, 1)
	assert.Equal(t, candidates[0], outcome.Trace[0].URL)
}

// TestResolverService_Resolve_CancelledDuringTransfer tests that a
// cancellation racing the committed download surfaces as Cancelled
// rather than TransferFailed.
func TestResolverService_Resolve_CancelledDuringTransfer(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")
	transport := memory.NewTransport()
	transport.Script(candidates[0], memory.Response{Body: pdfPayload})
	resolver := newTestResolver(transport, groups)

	ctx, cancel := context.WithCancel(context.Background())
	resolver.SetProbeListener(func(result domain.ProbeResult) {
		if result.Verified {
			cancel() // in-flight when the transfer starts
		}
	})

	outcome, err := resolver.Resolve(ctx, "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, outcome.Status)
}

// TestResolverService_Resolve_NotifiesListenerInProbeOrder tests the
// live progress hook UIs rely on.
func TestResolverService_Resolve_NotifiesListenerInProbeOrder(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "000000000000")
	transport := memory.NewTransport()
	for _, url := range candidates {
		transport.Script(url, memory.Response{Body: htmlPayload})
	}
	resolver := newTestResolver(transport, groups)

	var seen []string
	resolver.SetProbeListener(func(result domain.ProbeResult) {
		seen = append(seen, result.URL)
	})

	outcome, err := resolver.Resolve(context.Background(), "000000000000")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotFound, outcome.Status)
	assert.Equal(t, candidates, seen)
}

// TestResolverService_Resolve_Misconfigured tests the error return,
// which is reserved for a broken service rather than a failed lookup.
func TestResolverService_Resolve_Misconfigured(t *testing.T) {
	transport := memory.NewTransport()
	prober := NewProber(transport, signature.PDF(), testPolicy())

	tests := []struct {
		name     string
		resolver *ResolverService
		want     error
	}{
		{
			name:     "nil transport",
			resolver: NewResolverService(nil, prober, testGroups()),
			want:     domain.ErrNotConfigured,
		},
		{
			name:     "nil prober",
			resolver: NewResolverService(transport, nil, testGroups()),
			want:     domain.ErrNotConfigured,
		},
		{
			name:     "no groups",
			resolver: NewResolverService(transport, prober, nil),
			want:     domain.ErrNoTemplates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := tt.resolver.Resolve(context.Background(), "911401510832")

			assert.Nil(t, outcome)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// TestResolverService_SetGroups_HotSwap tests that a configuration
// reload takes effect on the next resolution.
func TestResolverService_SetGroups_HotSwap(t *testing.T) {
	replacement := []domain.TemplateGroup{
		{
			Name:      "primary",
			Templates: []domain.Template{"https://mirror.test/v3/{id}.pdf"},
		},
	}

	transport := memory.NewTransport()
	transport.Script("https://mirror.test/v3/911401510832.pdf",
		memory.Response{Body: pdfPayload},
		memory.Response{Body: pdfPayload},
	)
	resolver := newTestResolver(transport, testGroups())
	resolver.SetGroups(replacement)

	outcome, err := resolver.Resolve(context.Background(), "911401510832")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFound, outcome.Status)
	assert.Equal(t, "https://mirror.test/v3/911401510832.pdf", outcome.Document.SourceURL)
	require.Len(t, outcome.Trace, 1)
}

// TestResolverService_SetTransferTimeout tests the override guard.
func TestResolverService_SetTransferTimeout(t *testing.T) {
	resolver := newTestResolver(memory.NewTransport(), testGroups())

	resolver.SetTransferTimeout(42 * time.Second)
	assert.Equal(t, 42*time.Second, resolver.transferTimeout)

	resolver.SetTransferTimeout(0)
	assert.Equal(t, 42*time.Second, resolver.transferTimeout, "non-positive values are ignored")

	resolver.SetTransferTimeout(-time.Second)
	assert.Equal(t, 42*time.Second, resolver.transferTimeout)
}

// TestResolverService_Resolve_TransferUsesVerifiedURL tests that the
// committed download hits exactly the URL that verified.
func TestResolverService_Resolve_TransferUsesVerifiedURL(t *testing.T) {
	groups := testGroups()
	candidates := expandAll(groups, "911401510832")
	transport := memory.NewTransport()
	transport.Script(candidates[0], memory.Response{Body: htmlPayload})
	transport.Script(candidates[1],
		memory.Response{Body: pdfPayload},
		memory.Response{Body: pdfPayload},
	)
	resolver := newTestResolver(transport, groups)

	_, err := resolver.Resolve(context.Background(), "911401510832")

	require.NoError(t, err)
	requests := transport.Requests()
	require.Len(t, requests, 3)
	assert.Equal(t, candidates[0], requests[0])               // probe miss
	assert.Equal(t, candidates[1], requests[1])               // probe hit
	assert.Equal(t, candidates[1], requests[len(requests)-1]) // committed transfer
	assert.Equal(t, 2, transport.RequestCount(candidates[1]))
}
