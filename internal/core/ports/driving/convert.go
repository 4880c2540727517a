package driving

import (
	"context"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// Converter runs a document-to-Markdown conversion.
type Converter interface {
	// Convert fetches every document, converts it and writes it to each sink.
	Convert(ctx context.Context, opts ConvertOptions) (*ConvertReport, error)
}

// ConvertOptions tunes a single conversion run.
type ConvertOptions struct {
	// DryRun converts documents without writing them.
	DryRun bool
}

// ConvertReport summarises a conversion run.
type ConvertReport struct {
	// RunID identifies the run in logs.
	RunID string

	// Documents is the number of documents converted.
	Documents int

	// Writes lists every completed write in order.
	Writes []SinkResult
}

// SinkResult is a write result tagged with the sink that produced it.
type SinkResult struct {
	Sink   string
	Result domain.WriteResult
}
