package driven

import (
	"context"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// DocumentSource fetches documents from the document provider.
type DocumentSource interface {
	// Documents returns every convertible document under the configured root.
	Documents(ctx context.Context) ([]domain.Document, error)
}
