package markdown

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DefaultExtension is the output file extension when none is configured.
const DefaultExtension = "md"

// Phase property keys, in lookup order.
var phaseKeys = []string{"phase_name", "phase"}

// Options configures the output of the normaliser.
type Options struct {
	// Suffix is appended to every file name before the extension.
	Suffix string

	// Extension is the output file extension, without the dot.
	Extension string

	// ExtractCover moves the first image of the body into the front-matter.
	ExtractCover bool
}

// Normaliser turns exported Google Docs into Markdown with front-matter.
type Normaliser struct {
	opts Options
}

// New creates a new Markdown normaliser.
func New(opts Options) *Normaliser {
	opts.Extension = strings.TrimPrefix(opts.Extension, ".")
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	return &Normaliser{opts: opts}
}

// Normalise converts a document to Markdown with front-matter and an output path.
func (n *Normaliser) Normalise(_ context.Context, doc *domain.Document) (*domain.MarkdownDocument, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	body := doc.Body
	cover := doc.Cover
	if n.opts.ExtractCover && cover == nil {
		if extracted, rest := extractCover(body); extracted != nil {
			cover, body = extracted, rest
		}
	}
	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	return &domain.MarkdownDocument{
		ID:      doc.ID,
		Title:   doc.Title,
		Path:    n.outputPath(doc),
		Phase:   phaseOf(doc.Properties),
		Content: BuildFrontMatter(doc.Properties, cover) + body,
	}, nil
}

// outputPath builds breadcrumb/slug{suffix}.{extension}.
func (n *Normaliser) outputPath(doc *domain.Document) string {
	name := slugify(doc.Title)
	if name == "" {
		name = doc.ID
	}

	parts := make([]string, 0, len(doc.Breadcrumb)+1)
	for _, folder := range doc.Breadcrumb {
		if s := slugify(folder); s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, name+n.opts.Suffix+"."+n.opts.Extension)
	return path.Join(parts...)
}

func phaseOf(properties map[string]any) string {
	for _, key := range phaseKeys {
		v, ok := properties[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return ""
}
