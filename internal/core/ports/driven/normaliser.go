package driven

import (
	"context"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// Normaliser transforms a source document into a Markdown document.
type Normaliser interface {
	// Normalise builds the front-matter, body and output path for doc.
	Normalise(ctx context.Context, doc *domain.Document) (*domain.MarkdownDocument, error)
}
