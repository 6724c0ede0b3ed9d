package driven

import (
	"context"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

// FileSaver persists a retrieved document to durable storage.
//
// The saver chooses where the file lands (working directory, a
// configured output directory) but must honour the document's
// Filename. Save returns the absolute path of the written file.
type FileSaver interface {
	// Save writes the document payload under its filename and returns
	// the path of the file that was created.
	Save(ctx context.Context, doc *domain.Document) (string, error)
}
