package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/specfetch-cli/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.Resolver = (*ResolverService)(nil)

// ResolverService resolves identifiers to documents by probing candidate
// URLs in template order.
type ResolverService struct {
	transport driven.Transport
	prober    *Prober

	transferTimeout time.Duration

	mu      sync.RWMutex
	groups  []domain.TemplateGroup
	onProbe func(domain.ProbeResult)
}

// NewResolverService creates a resolver over the given template groups.
// The groups are explicit configuration: group order decides probe
// precedence, template order decides the order within a group. The
// transfer timeout defaults to domain.DefaultTransferTimeout.
func NewResolverService(transport driven.Transport, prober *Prober, groups []domain.TemplateGroup) *ResolverService {
	return &ResolverService{
		transport:       transport,
		prober:          prober,
		groups:          groups,
		transferTimeout: domain.DefaultTransferTimeout,
	}
}

// SetTransferTimeout overrides the bound on the committed download.
// Non-positive values are ignored.
func (s *ResolverService) SetTransferTimeout(d time.Duration) {
	if d > 0 {
		s.transferTimeout = d
	}
}

// SetProbeListener installs a callback invoked after every probe, in
// probe order. UIs use it to stream progress while a resolution runs.
func (s *ResolverService) SetProbeListener(fn func(domain.ProbeResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onProbe = fn
}

// SetGroups replaces the template groups consulted by subsequent Resolve
// calls. A resolution already in flight keeps the groups it started with.
func (s *ResolverService) SetGroups(groups []domain.TemplateGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

func (s *ResolverService) templateGroups() []domain.TemplateGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// Resolve validates rawInput, probes every candidate URL in template
// order and downloads the first verified one.
//
// Call-level failures (nothing found, transfer failed, cancelled) are
// reported as structured outcomes; the error return is reserved for a
// misconfigured service.
func (s *ResolverService) Resolve(ctx context.Context, rawInput string) (*domain.Outcome, error) {
	// 1. Validate the identifier shape before touching the network.
	id, err := domain.ParseIdentifier(rawInput)
	if err != nil {
		logger.Warn("Rejected identifier %q: %v", rawInput, err)
		return &domain.Outcome{
			Status:  domain.StatusInvalidIdentifier,
			Message: err.Error(),
		}, nil
	}

	// 2. Guard the collaborators the probe loop needs.
	if s.transport == nil {
		return nil, fmt.Errorf("resolve: transport %w", domain.ErrNotConfigured)
	}
	if s.prober == nil {
		return nil, fmt.Errorf("resolve: prober %w", domain.ErrNotConfigured)
	}
	groups := s.templateGroups()
	if len(groups) == 0 {
		return nil, fmt.Errorf("resolve: %w", domain.ErrNoTemplates)
	}

	logger.Section("Identifier Resolution")
	logger.Debug("Identifier: %s", id)
	logger.Debug("Template groups: %d", len(groups))

	// 3. Probe candidates strictly sequentially: group order, then
	// template order, so the trace is deterministic.
	reporter := NewReporter()
	for _, group := range groups {
		logger.Debug("Trying %s group (%d templates)", group.Name, len(group.Templates))

		for _, template := range group.Templates {
			// Cooperative cancellation between candidates.
			if ctx.Err() != nil {
				logger.Warn("Resolution cancelled after %d candidates", reporter.Len())
				return cancelledOutcome(reporter), nil
			}

			candidate := template.Expand(id)
			logger.Debug("Probing: %s", candidate)

			result := s.prober.Probe(ctx, candidate)
			reporter.Record(result)
			s.notifyProbe(result)

			if !result.Verified {
				continue
			}

			// 4. First verified candidate wins: perform the committed
			// transfer with the longer timeout.
			logger.Info("Verified %s (attempt %d)", candidate, result.Attempts)
			doc, err := s.download(ctx, id, candidate)
			if err != nil {
				if ctx.Err() != nil {
					logger.Warn("Transfer cancelled for %s", candidate)
					return cancelledOutcome(reporter), nil
				}
				logger.Warn("Transfer failed for %s: %v", candidate, err)
				return &domain.Outcome{
					Status:  domain.StatusTransferFailed,
					Trace:   reporter.Trace(),
					Message: fmt.Sprintf("Found the document at %s but the transfer failed: %v", candidate, err),
				}, nil
			}

			logger.Info("Retrieved %d bytes from %s", doc.Size(), candidate)
			return &domain.Outcome{
				Status:   domain.StatusFound,
				Document: doc,
				Trace:    reporter.Trace(),
			}, nil
		}
	}

	// A cancellation that cut the final probe short must not be
	// mistaken for an exhausted candidate list.
	if ctx.Err() != nil {
		logger.Warn("Resolution cancelled after %d candidates", reporter.Len())
		return cancelledOutcome(reporter), nil
	}

	// 5. Every candidate exhausted without a verified match.
	logger.Warn("No document found after %d candidates", reporter.Len())
	return &domain.Outcome{
		Status:  domain.StatusNotFound,
		Trace:   reporter.Trace(),
		Message: domain.NotFoundMessage,
	}, nil
}

// download fetches the full payload of a verified candidate.
func (s *ResolverService) download(ctx context.Context, id domain.Identifier, url string) (*domain.Document, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.transferTimeout)
	defer cancel()

	payload, err := s.transport.Fetch(fetchCtx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
	}

	return &domain.Document{
		Identifier: id,
		SourceURL:  url,
		Filename:   id.Filename(),
		Payload:    payload,
		Retrieved:  time.Now(),
	}, nil
}

func (s *ResolverService) notifyProbe(result domain.ProbeResult) {
	s.mu.RLock()
	fn := s.onProbe
	s.mu.RUnlock()

	if fn != nil {
		fn(result)
	}
}

func cancelledOutcome(reporter *Reporter) *domain.Outcome {
	return &domain.Outcome{
		Status:  domain.StatusCancelled,
		Trace:   reporter.Trace(),
		Message: "Resolution cancelled",
	}
}
