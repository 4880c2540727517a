package github

import (
	"context"
	"path"
	"strings"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
)

// Ensure MarkdownWriter implements the interface.
var _ driven.MarkdownWriter = (*MarkdownWriter)(nil)

// DefaultMessageTemplate is the commit message used when none is configured.
const DefaultMessageTemplate = "docs: update {path} from Google Docs"

// Target locates the repository directory documents are written to.
type Target struct {
	Owner      string
	Repo       string
	PathPrefix string
}

// MarkdownWriterConfig configures a MarkdownWriter.
type MarkdownWriterConfig struct {
	Target Target

	// Branches picks the commit branch from the document phase.
	Branches domain.BranchMapping

	// DefaultPhase is used for documents without a phase property.
	DefaultPhase string

	Committer domain.Committer

	// MessageTemplate may reference {path} and {title}.
	MessageTemplate string
}

// MarkdownWriter commits converted documents to a GitHub repository.
type MarkdownWriter struct {
	writer *Writer
	cfg    MarkdownWriterConfig
}

// NewMarkdownWriter creates a sink on top of a remote file Writer.
func NewMarkdownWriter(w *Writer, cfg MarkdownWriterConfig) *MarkdownWriter {
	if cfg.MessageTemplate == "" {
		cfg.MessageTemplate = DefaultMessageTemplate
	}
	return &MarkdownWriter{writer: w, cfg: cfg}
}

// Name returns the sink name.
func (m *MarkdownWriter) Name() string {
	return "github"
}

// Write resolves the branch for doc and commits it.
func (m *MarkdownWriter) Write(ctx context.Context, doc *domain.MarkdownDocument) (*domain.WriteResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}

	phase := doc.Phase
	if phase == "" {
		phase = m.cfg.DefaultPhase
	}
	branch, err := m.cfg.Branches.Resolve(phase)
	if err != nil {
		return nil, err
	}

	filePath := path.Join(strings.Trim(m.cfg.Target.PathPrefix, "/"), doc.Path)
	message := strings.NewReplacer("{path}", filePath, "{title}", doc.Title).Replace(m.cfg.MessageTemplate)

	return m.writer.Write(ctx, domain.WriteRequest{
		Owner:     m.cfg.Target.Owner,
		Repo:      m.cfg.Target.Repo,
		Path:      filePath,
		Branch:    branch,
		Content:   doc.Content,
		Committer: m.cfg.Committer,
		Message:   message,
	})
}
