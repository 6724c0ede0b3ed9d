package driven

import (
	"context"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// TemplateStore supplies the ordered URL template groups used to build
// candidate URLs for an identifier.
//
// Group order is significant: earlier groups are probed to exhaustion
// before later groups are considered. Implementations typically load
// the groups from configuration once and serve them unchanged.
type TemplateStore interface {
	// Groups returns the template groups in probe order.
	Groups(ctx context.Context) ([]domain.TemplateGroup, error)
}
