package drive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gdocs2md/internal/connectors/google"
	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/core/ports/driven"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Source reads the Google Docs of one Drive folder.
type Source struct {
	svc     *drive.Service
	cfg     Config
	limiter *google.RateLimiter
}

// Option configures a Source.
type Option func(*Source)

// WithRateLimiter replaces the default Drive rate limiter.
func WithRateLimiter(rl *google.RateLimiter) Option {
	return func(s *Source) { s.limiter = rl }
}

// NewSource creates a Drive document source.
func NewSource(svc *drive.Service, cfg Config, opts ...Option) (*Source, error) {
	if svc == nil {
		return nil, fmt.Errorf("%w: drive service is required", domain.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Source{svc: svc, cfg: cfg, limiter: google.NewRateLimiter()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Documents lists and exports every Google Doc under the configured folder.
// Documents come back in folder order: files of a folder by name, then its sub-folders.
func (s *Source) Documents(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	visited := make(map[string]bool)
	if err := s.walk(ctx, s.cfg.FolderID, nil, visited, &docs); err != nil {
		return docs, err
	}
	logger.Info("found %d Google Docs in folder %s", len(docs), s.cfg.FolderID)
	return docs, nil
}

func (s *Source) walk(
	ctx context.Context, folderID string, breadcrumb []string, visited map[string]bool, docs *[]domain.Document,
) error {
	// A folder can have several parents, so the tree may reach it twice.
	if visited[folderID] {
		return nil
	}
	visited[folderID] = true

	files, err := s.list(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list folder %s: %w", folderID, err)
	}

	var folders []*drive.File
	for _, file := range files {
		switch file.MimeType {
		case MimeTypeFolder:
			folders = append(folders, file)
		case MimeTypeGoogleDoc:
			logger.Debug("exporting %q (%s)", file.Name, file.Id)
			doc, err := s.FileToDocument(ctx, file, breadcrumb)
			if err != nil {
				return err
			}
			*docs = append(*docs, *doc)
		default:
			logger.Debug("skipping %q: %s", file.Name, file.MimeType)
		}
	}

	if !s.cfg.Recursive {
		return nil
	}
	for _, folder := range folders {
		crumb := append(append([]string(nil), breadcrumb...), folder.Name)
		if err := s.walk(ctx, folder.Id, crumb, visited, docs); err != nil {
			return err
		}
	}
	return nil
}

// list returns all non-trashed children of a folder, following page tokens.
func (s *Source) list(ctx context.Context, folderID string) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))

	var (
		files     []*drive.File
		pageToken string
	)
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		call := s.svc.Files.List().
			Q(query).
			Fields(googleapi.Field("nextPageToken, files(" + fileFields + ")")).
			OrderBy("name").
			PageSize(s.cfg.PageSize).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, s.wrapError(err)
		}
		files = append(files, resp.Files...)

		if resp.NextPageToken == "" {
			return files, nil
		}
		pageToken = resp.NextPageToken
	}
}

// wrapError maps API errors and starts a backoff window on rate limiting.
func (s *Source) wrapError(err error) error {
	wrapped := google.WrapError(err)
	if google.IsRateLimited(wrapped) {
		s.limiter.RecordRateLimitError(retryAfter(err))
	}
	return wrapped
}

// retryAfter reads the Retry-After header of a Google API error, in seconds.
func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// escapeQuery escapes a value for a single-quoted Drive query literal.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
