package driven

import (
	"context"

	"github.com/custodia-labs/orsaqc/internal/core/domain"
)

// DocumentSource produces the documents a batch run should consider.
// Implementations may scan a directory, query a database or download from
// a remote store; the core only consumes the resulting references.
type DocumentSource interface {
	// Load returns the document references available for processing.
	Load(ctx context.Context) ([]domain.DocumentRef, error)
}
