package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gdocs2md/internal/connectors/google"
	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// Drive MIME types.
const (
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
	MimeTypeFolder    = "application/vnd.google-apps.folder"
)

// ExportMimeMarkdown is the export format requested for Google Docs.
const ExportMimeMarkdown = "text/markdown"

// fileFields are the file attributes requested from files.list.
const fileFields = "id, name, mimeType, description, properties, createdTime, modifiedTime, webViewLink"

// FileToDocument exports a Google Doc and converts it to a Document.
func (s *Source) FileToDocument(ctx context.Context, file *drive.File, breadcrumb []string) (*domain.Document, error) {
	if file.MimeType != MimeTypeGoogleDoc {
		return nil, fmt.Errorf("%w: %s is %s, not a Google Doc", domain.ErrInvalidInput, file.Id, file.MimeType)
	}

	body, err := s.export(ctx, file.Id)
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", file.Name, err)
	}

	return &domain.Document{
		ID:         file.Id,
		Title:      file.Name,
		Breadcrumb: append([]string(nil), breadcrumb...),
		Properties: fileProperties(file),
		Body:       body,
	}, nil
}

// export downloads the Markdown rendering of a Google Doc.
func (s *Source) export(ctx context.Context, fileID string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.svc.Files.Export(fileID, ExportMimeMarkdown).Context(ctx).Download()
	if err != nil {
		return "", s.wrapError(err)
	}
	defer resp.Body.Close()

	// Read one byte past the cap to detect truncation.
	data, err := io.ReadAll(io.LimitReader(resp.Body, s.cfg.MaxExportSize+1))
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxExportSize {
		return "", fmt.Errorf("%w: more than %d bytes", google.ErrExportTooLarge, s.cfg.MaxExportSize)
	}
	return string(data), nil
}

// fileProperties builds the front-matter properties of a file.
// Later sources win: file metadata, then description YAML, then Drive properties.
func fileProperties(file *drive.File) map[string]any {
	props := map[string]any{
		"id":    file.Id,
		"title": file.Name,
		"url":   ResolveWebURL(file.Id, file.WebViewLink),
	}
	if file.CreatedTime != "" {
		props["createdTime"] = file.CreatedTime
	}
	if file.ModifiedTime != "" {
		props["modifiedTime"] = file.ModifiedTime
	}

	for k, v := range parseDescription(file.Description) {
		props[k] = v
	}
	for k, v := range file.Properties {
		props[k] = v
	}
	return props
}

// parseDescription reads a file description holding YAML front-matter.
// Anything that is not a YAML mapping is kept verbatim as "description".
func parseDescription(description string) map[string]any {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	// Tolerate descriptions wrapped in front-matter delimiters.
	trimmed := strings.TrimSpace(strings.Trim(description, "-"))

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(trimmed), &parsed); err != nil || len(parsed) == 0 {
		if err != nil {
			logger.Debug("description is not YAML: %v", err)
		}
		return map[string]any{"description": description}
	}
	return parsed
}
