package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
	"github.com/custodia-labs/gdocs2md/internal/logger"
)

// stampLayout matches JavaScript's Date.toISOString().
const stampLayout = "2006-01-02T15:04:05.000Z"

// Writer creates or updates single files through the contents API.
//
// Every Write looks the file up again; nothing is cached between calls.
// The lookup and the write are two requests, so a concurrent writer can
// slip in between. The SHA sent with an update makes GitHub reject such
// a write with 409, reported as domain.ErrConflict.
type Writer struct {
	client      *Client
	forceCommit bool
	maxRetries  int
	retryDelay  time.Duration
	now         func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithForceCommit controls the timestamp suffix. When on (the default) every
// write gets a unique content and always produces a commit. When off, a file
// whose content already matches is left alone.
func WithForceCommit(force bool) WriterOption {
	return func(w *Writer) { w.forceCommit = force }
}

// WithRetry sets how often and how fast transient lookup failures are retried.
func WithRetry(maxRetries int, delay time.Duration) WriterOption {
	return func(w *Writer) {
		w.maxRetries = maxRetries
		w.retryDelay = delay
	}
}

// NewWriter creates a Writer on top of client.
func NewWriter(client *Client, opts ...WriterOption) *Writer {
	w := &Writer{
		client:      client,
		forceCommit: true,
		maxRetries:  MaxRetries,
		retryDelay:  RetryDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Lookup fetches the current state of the request's file and classifies the outcome.
func (w *Writer) Lookup(ctx context.Context, req domain.WriteRequest) domain.LookupOutcome {
	file, err := w.client.GetFile(ctx, req.Owner, req.Repo, req.Path, req.Branch)
	switch {
	case err == nil:
		return domain.LookupOutcome{Status: domain.LookupFound, File: file}
	case IsNotFound(err):
		return domain.LookupOutcome{Status: domain.LookupNotFound}
	case IsTransient(err):
		return domain.LookupOutcome{Status: domain.LookupTransient, Err: err}
	default:
		return domain.LookupOutcome{Status: domain.LookupFailed, Err: err}
	}
}

// lookupWithRetry retries transient lookups with a doubling delay.
func (w *Writer) lookupWithRetry(ctx context.Context, req domain.WriteRequest) domain.LookupOutcome {
	for attempt := 0; ; attempt++ {
		outcome := w.Lookup(ctx, req)
		if outcome.Status != domain.LookupTransient || attempt >= w.maxRetries {
			return outcome
		}

		delay := w.retryDelay << attempt
		logger.Warn("lookup of %s@%s failed (%v), retrying in %s (attempt %d/%d)",
			req.Path, req.Branch, outcome.Err, delay, attempt+1, w.maxRetries)

		select {
		case <-ctx.Done():
			return domain.LookupOutcome{Status: domain.LookupFailed, Err: ctx.Err()}
		case <-time.After(delay):
		}
	}
}

// Write makes the file at req.Path on req.Branch hold req.Content.
func (w *Writer) Write(ctx context.Context, req domain.WriteRequest) (*domain.WriteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	outcome := w.lookupWithRetry(ctx, req)
	logger.Debug("lookup %s/%s:%s@%s -> %s", req.Owner, req.Repo, req.Path, req.Branch, outcome.Status)

	switch outcome.Status {
	case domain.LookupTransient, domain.LookupFailed:
		return nil, fmt.Errorf("look up %s@%s: %w", req.Path, req.Branch, outcome.Err)
	case domain.LookupFound:
		if !w.forceCommit && !outcome.File.Large && outcome.File.Content == req.Content {
			logger.Debug("%s@%s is up to date", req.Path, req.Branch)
			return &domain.WriteResult{
				Action: domain.ActionUnchanged,
				Path:   req.Path,
				Branch: req.Branch,
				SHA:    outcome.File.SHA,
			}, nil
		}
	}

	content := req.Content
	if w.forceCommit {
		content += " " + w.now().UTC().Format(stampLayout)
	}

	message := req.Message
	if message == "" {
		message = "Update " + req.Path
	}

	opts := &gh.RepositoryContentFileOptions{
		Message:   gh.Ptr(message),
		Content:   []byte(content),
		Branch:    gh.Ptr(req.Branch),
		Committer: commitAuthor(req.Committer),
	}

	var (
		resp   *gh.RepositoryContentResponse
		err    error
		action domain.WriteAction
	)
	if outcome.Status == domain.LookupFound {
		action = domain.ActionUpdated
		opts.SHA = gh.Ptr(outcome.File.SHA)
		resp, err = w.client.UpdateFile(ctx, req.Owner, req.Repo, req.Path, opts)
	} else {
		action = domain.ActionCreated
		resp, err = w.client.CreateFile(ctx, req.Owner, req.Repo, req.Path, opts)
	}
	if err != nil {
		if IsConflict(err) || (action == domain.ActionCreated && IsMissingSHA(err)) {
			return nil, fmt.Errorf("%s %s@%s: %w: %w", action, req.Path, req.Branch, domain.ErrConflict, err)
		}
		return nil, fmt.Errorf("%s %s@%s: %w", action, req.Path, req.Branch, err)
	}

	logger.Debug("%s %s@%s", action, req.Path, req.Branch)
	return writeResult(resp, action, req), nil
}

// commitAuthor returns nil unless both name and email are set; GitHub
// rejects a committer with either one missing.
func commitAuthor(c domain.Committer) *gh.CommitAuthor {
	if c.Name == "" || c.Email == "" {
		return nil
	}
	return &gh.CommitAuthor{Name: gh.Ptr(c.Name), Email: gh.Ptr(c.Email)}
}

func writeResult(resp *gh.RepositoryContentResponse, action domain.WriteAction, req domain.WriteRequest) *domain.WriteResult {
	result := &domain.WriteResult{
		Action: action,
		Path:   req.Path,
		Branch: req.Branch,
	}
	if resp == nil {
		return result
	}
	if resp.Content != nil {
		result.SHA = resp.Content.GetSHA()
		result.URL = resp.Content.GetHTMLURL()
	}
	result.CommitSHA = resp.Commit.GetSHA()
	return result
}
