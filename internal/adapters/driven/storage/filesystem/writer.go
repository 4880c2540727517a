// Package filesystem writes converted documents below a local directory.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// Ensure Writer implements the interface.
var _ driven.MarkdownWriter = (*Writer)(nil)

// File and directory permissions for written documents.
const (
	FileMode = 0o644
	DirMode  = 0o755
)

// Writer stores each document at its relative path below a root directory.
type Writer struct {
	fs   afero.Fs
	root string
}

// NewWriter creates a sink rooted at root on base.
// Paths escaping the root are rejected by the underlying BasePathFs.
func NewWriter(base afero.Fs, root string) *Writer {
	return &Writer{
		fs:   afero.NewBasePathFs(base, root),
		root: root,
	}
}

// NewOsWriter creates a sink on the real filesystem.
func NewOsWriter(root string) *Writer {
	return NewWriter(afero.NewOsFs(), root)
}

// Name returns the sink name.
func (w *Writer) Name() string {
	return "filesystem"
}

// Write creates or replaces the document file.
// A file that already holds the same content is left untouched.
func (w *Writer) Write(ctx context.Context, doc *domain.MarkdownDocument) (*domain.WriteResult, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := cleanPath(doc.Path)
	if rel == "" {
		return nil, fmt.Errorf("%w: document %q has no path", domain.ErrInvalidInput, doc.ID)
	}

	action := domain.ActionCreated
	existing, err := afero.ReadFile(w.fs, rel)
	switch {
	case err == nil:
		if bytes.Equal(existing, []byte(doc.Content)) {
			return w.result(domain.ActionUnchanged, rel), nil
		}
		action = domain.ActionUpdated
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	if dir := path.Dir(rel); dir != "." {
		if err := w.fs.MkdirAll(dir, DirMode); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(w.fs, rel, []byte(doc.Content), FileMode); err != nil {
		return nil, fmt.Errorf("write %s: %w", rel, err)
	}

	logger.Debug("%s %s", action, path.Join(w.root, rel))
	return w.result(action, rel), nil
}

func (w *Writer) result(action domain.WriteAction, rel string) *domain.WriteResult {
	return &domain.WriteResult{
		Action: action,
		Path:   rel,
		URL:    "file://" + path.Join(w.root, rel),
	}
}

// cleanPath makes p relative and slash separated.
func cleanPath(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, `\`, "/"))
	return strings.TrimPrefix(p, "/")
}
