package driven

import (
	"context"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// MarkdownWriter writes converted Markdown to a sink.
// Writes are issued one at a time by the caller.
type MarkdownWriter interface {
	// Name identifies the sink in logs and reports.
	Name() string

	// Write stores doc and describes what happened.
	Write(ctx context.Context, doc *domain.MarkdownDocument) (*domain.WriteResult, error)
}
