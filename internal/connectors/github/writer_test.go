package github

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func newTestWriter(t *testing.T, api *fakeContentsAPI, opts ...WriterOption) *Writer {
	t.Helper()
	opts = append([]WriterOption{WithRetry(2, time.Millisecond)}, opts...)
	w := NewWriter(newTestClient(t, api), opts...)
	w.now = func() time.Time { return fixedNow }
	return w
}

func testRequest() domain.WriteRequest {
	return domain.WriteRequest{
		Owner:     "octo",
		Repo:      "site",
		Path:      "docs/a.md",
		Branch:    "main",
		Content:   "hello",
		Committer: domain.Committer{Name: "Docs Bot", Email: "bot@example.com"},
		Message:   "docs: update docs/a.md",
	}
}

func TestNewWriter_Defaults(t *testing.T) {
	w := NewWriter(&Client{})

	assert.True(t, w.forceCommit)
	assert.Equal(t, MaxRetries, w.maxRetries)
	assert.Equal(t, RetryDelay, w.retryDelay)
	assert.NotNil(t, w.now)
}

func TestWriter_CreatesWhenNotFound(t *testing.T) {
	api := newFakeContentsAPI()
	w := newTestWriter(t, api)

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionCreated, res.Action)
	assert.Equal(t, "docs/a.md", res.Path)
	assert.Equal(t, "main", res.Branch)
	assert.Equal(t, "newsha", res.SHA)
	assert.Equal(t, "commitsha", res.CommitSHA)
	assert.Equal(t, "https://github.com/octo/site/blob/main/docs/a.md", res.URL)

	assert.Equal(t, []string{"docs/a.md@main"}, api.gets)
	require.Len(t, api.puts, 1)
	put := api.puts[0]
	assert.Nil(t, put.SHA, "create must not carry a sha")
	assert.Equal(t, "main", put.Branch)
	assert.Equal(t, "docs: update docs/a.md", put.Message)
	assert.Equal(t, "hello 2024-05-06T07:08:09.000Z", put.decoded(t))
	require.NotNil(t, put.Committer)
	assert.Equal(t, "Docs Bot", put.Committer.Name)
	assert.Equal(t, "bot@example.com", put.Committer.Email)
}

func TestWriter_UpdatesWithExistingSHA(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "old"}
	w := newTestWriter(t, api)

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, res.Action)
	require.Len(t, api.puts, 1)
	require.NotNil(t, api.puts[0].SHA)
	assert.Equal(t, "abc123", *api.puts[0].SHA)
}

func TestWriter_LooksUpOnTargetBranch(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "old"}
	w := newTestWriter(t, api)

	req := testRequest()
	req.Branch = "dev"
	res, err := w.Write(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.ActionCreated, res.Action)
	assert.Equal(t, []string{"docs/a.md@dev"}, api.gets)
}

func TestWriter_ChecksExistenceOnEveryWrite(t *testing.T) {
	api := newFakeContentsAPI()
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)
	_, err = w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Len(t, api.gets, 2)
}

func TestWriter_RetriesTransientLookup(t *testing.T) {
	api := newFakeContentsAPI()
	api.getStatuses = []int{http.StatusBadGateway, http.StatusServiceUnavailable}
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "old"}
	w := newTestWriter(t, api)

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, res.Action)
	assert.Len(t, api.gets, 3)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "abc123", *api.puts[0].SHA)
}

func TestWriter_TransientLookupNeverCreates(t *testing.T) {
	api := newFakeContentsAPI()
	api.getStatuses = []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway}
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Len(t, api.gets, 3, "one attempt plus two retries")
	assert.Empty(t, api.puts)
}

func TestWriter_PermanentLookupFailureNotRetried(t *testing.T) {
	api := newFakeContentsAPI()
	api.getStatuses = []int{http.StatusUnauthorized}
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())
	require.Error(t, err)

	assert.True(t, IsUnauthorized(err))
	assert.Len(t, api.gets, 1)
	assert.Empty(t, api.puts)
}

func TestWriter_DirectoryPathFails(t *testing.T) {
	api := newFakeContentsAPI()
	api.directory = true
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, api.gets, 1)
	assert.Empty(t, api.puts)
}

func TestWriter_UpdateConflict(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "old"}
	api.putStatus = http.StatusConflict
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, IsConflict(err))
}

func TestWriter_CreateRaceIsConflict(t *testing.T) {
	api := newFakeContentsAPI()
	api.putStatus = http.StatusUnprocessableEntity
	api.putMessage = "Invalid request.\n\n\"sha\" wasn't supplied."
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWriter_CreateValidationErrorIsNotConflict(t *testing.T) {
	api := newFakeContentsAPI()
	api.putStatus = http.StatusUnprocessableEntity
	api.putMessage = "Invalid request.\n\nFor 'properties/committer', {\"name\"=>\"bot\"} is not valid."
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.True(t, IsUnprocessable(err))
	assert.Contains(t, err.Error(), "properties/committer")
}

func TestWriter_UpdatesLargeFile(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "bigsha", large: true}
	w := newTestWriter(t, api)

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, res.Action)
	require.Len(t, api.puts, 1)
	require.NotNil(t, api.puts[0].SHA)
	assert.Equal(t, "bigsha", *api.puts[0].SHA)
}

func TestWriter_NoForceCommit_LargeFileAlwaysWritten(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "bigsha", large: true}
	w := newTestWriter(t, api, WithForceCommit(false))

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, res.Action)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "hello", api.puts[0].decoded(t))
}

func TestWriter_OtherWriteErrorsPropagate(t *testing.T) {
	api := newFakeContentsAPI()
	api.putStatus = http.StatusForbidden
	w := newTestWriter(t, api)

	_, err := w.Write(context.Background(), testRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.True(t, IsForbidden(err))
}

func TestWriter_NoForceCommit_Unchanged(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "hello"}
	w := newTestWriter(t, api, WithForceCommit(false))

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUnchanged, res.Action)
	assert.Equal(t, "abc123", res.SHA)
	assert.Empty(t, api.puts)
}

func TestWriter_NoForceCommit_WritesExactContent(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "old"}
	w := newTestWriter(t, api, WithForceCommit(false))

	res, err := w.Write(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUpdated, res.Action)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "hello", api.puts[0].decoded(t))
}

func TestWriter_InvalidRequest(t *testing.T) {
	api := newFakeContentsAPI()
	w := newTestWriter(t, api)

	req := testRequest()
	req.Branch = ""
	_, err := w.Write(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, api.gets)
}

func TestWriter_DefaultMessageAndNoCommitter(t *testing.T) {
	api := newFakeContentsAPI()
	w := newTestWriter(t, api)

	req := testRequest()
	req.Message = ""
	req.Committer = domain.Committer{}
	_, err := w.Write(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, api.puts, 1)
	assert.Equal(t, "Update docs/a.md", api.puts[0].Message)
	assert.Nil(t, api.puts[0].Committer)
}

func TestWriter_PartialCommitterOmitted(t *testing.T) {
	for _, c := range []domain.Committer{{Name: "bot"}, {Email: "bot@example.com"}} {
		api := newFakeContentsAPI()
		w := newTestWriter(t, api)

		req := testRequest()
		req.Committer = c
		_, err := w.Write(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, api.puts, 1)
		assert.Nil(t, api.puts[0].Committer, "committer %+v", c)
	}
}

func TestWriter_Lookup(t *testing.T) {
	api := newFakeContentsAPI()
	api.files["docs/a.md@main"] = fakeFile{sha: "abc123", content: "hello"}
	w := newTestWriter(t, api)

	found := w.Lookup(context.Background(), testRequest())
	assert.Equal(t, domain.LookupFound, found.Status)
	require.NotNil(t, found.File)
	assert.Equal(t, "abc123", found.File.SHA)
	assert.Equal(t, "hello", found.File.Content)

	req := testRequest()
	req.Path = "docs/missing.md"
	missing := w.Lookup(context.Background(), req)
	assert.Equal(t, domain.LookupNotFound, missing.Status)
	assert.NoError(t, missing.Err)

	api.getStatuses = []int{http.StatusInternalServerError}
	transient := w.Lookup(context.Background(), testRequest())
	assert.Equal(t, domain.LookupTransient, transient.Status)
	assert.Error(t, transient.Err)
}

func TestWriter_CancelledDuringRetry(t *testing.T) {
	api := newFakeContentsAPI()
	api.getStatuses = []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway}
	w := NewWriter(newTestClient(t, api), WithRetry(3, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := w.Write(ctx, testRequest())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, api.puts)
}
