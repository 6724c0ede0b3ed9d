package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// Resolver resolves a raw identifier to a specification document.
//
// Resolve validates the input, probes each candidate URL in template
// order, and reports what happened as an Outcome. The error return is
// reserved for failures of the resolver itself (missing configuration);
// a document that cannot be found is a successful resolution with a
// not-found outcome, not an error.
type Resolver interface {
	// Resolve takes the raw identifier as entered by the user and
	// returns the outcome of the resolution run.
	Resolve(ctx context.Context, rawInput string) (*domain.Outcome, error)

	// SetProbeListener installs a callback invoked after every probe,
	// in probe order. UIs use it to stream progress while a resolution
	// runs. A nil listener disables notifications.
	SetProbeListener(fn func(domain.ProbeResult))

	// SetTransferTimeout overrides the bound on the committed download
	// of a verified candidate. Non-positive values are ignored.
	SetTransferTimeout(d time.Duration)

	// SetGroups replaces the template groups consulted by subsequent
	// Resolve calls. Used when the template configuration is reloaded
	// at runtime.
	SetGroups(groups []domain.TemplateGroup)
}
