package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driving"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// Ensure ConvertService implements the interface.
var _ driving.Converter = (*ConvertService)(nil)

// ConvertService moves documents from a source through the normaliser into every sink.
type ConvertService struct {
	source     driven.DocumentSource
	normaliser driven.Normaliser
	sinks      []driven.MarkdownWriter
	newID      func() string
}

// NewConvertService creates a conversion service. Sinks are written in order.
func NewConvertService(
	source driven.DocumentSource,
	normaliser driven.Normaliser,
	sinks ...driven.MarkdownWriter,
) *ConvertService {
	return &ConvertService{
		source:     source,
		normaliser: normaliser,
		sinks:      sinks,
		newID:      uuid.NewString,
	}
}

// Convert processes documents one at a time. The first failure stops the run;
// the report then covers everything written before it. A document whose output
// path was already produced in this run fails with domain.ErrDuplicatePath
// before anything is written for it.
func (s *ConvertService) Convert(ctx context.Context, opts driving.ConvertOptions) (*driving.ConvertReport, error) {
	report := &driving.ConvertReport{RunID: s.newID()}

	if s.source == nil || s.normaliser == nil {
		return report, fmt.Errorf("%w: source and normaliser are required", domain.ErrInvalidInput)
	}
	if len(s.sinks) == 0 && !opts.DryRun {
		return report, domain.ErrNoSink
	}

	logger.Section("Convert " + report.RunID)

	docs, err := s.source.Documents(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch documents: %w", err)
	}
	logger.Info("[%s] %d documents to convert", report.RunID, len(docs))

	seen := make(map[string]string, len(docs)) // output path -> title

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		doc := &docs[i]
		md, err := s.normaliser.Normalise(ctx, doc)
		if err != nil {
			return report, fmt.Errorf("convert %q: %w", doc.Title, err)
		}
		if prev, ok := seen[md.Path]; ok {
			return report, fmt.Errorf("%w: %q and %q both map to %s",
				domain.ErrDuplicatePath, prev, doc.Title, md.Path)
		}
		seen[md.Path] = doc.Title
		report.Documents++

		if opts.DryRun {
			logger.Info("[%s] would write %s (phase %q)", report.RunID, md.Path, md.Phase)
			continue
		}

		for _, sink := range s.sinks {
			res, err := sink.Write(ctx, md)
			if err != nil {
				return report, fmt.Errorf("write %s to %s: %w", md.Path, sink.Name(), err)
			}
			logger.Info("[%s] %s %s %s", report.RunID, sink.Name(), res.Action, res.Path)
			report.Writes = append(report.Writes, driving.SinkResult{Sink: sink.Name(), Result: *res})
		}
	}

	return report, nil
}
