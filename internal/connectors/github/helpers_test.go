package github

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// putRequest is the body go-github sends to PUT /repos/{o}/{r}/contents/{path}.
type putRequest struct {
	Path      string
	Message   string  `json:"message"`
	Content   string  `json:"content"`
	SHA       *string `json:"sha"`
	Branch    string  `json:"branch"`
	Committer *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"committer"`
}

// decoded returns the base64-decoded content.
func (p putRequest) decoded(t *testing.T) string {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(p.Content)
	require.NoError(t, err)
	return string(b)
}

// fakeFile is a file stored by fakeContentsAPI.
type fakeFile struct {
	sha     string
	content string
	// large makes GET answer like the API does for files over 1 MB.
	large bool
}

// fakeContentsAPI serves the two contents endpoints for one repository.
type fakeContentsAPI struct {
	mu sync.Mutex

	files map[string]fakeFile // key: path@branch

	// getStatuses are returned, in order, before normal GET handling.
	getStatuses []int
	// putStatus, when non-zero, is returned instead of accepting a PUT.
	putStatus int
	// putMessage overrides the error message sent with putStatus.
	putMessage string
	// directory makes every GET answer with a directory listing.
	directory bool

	gets []string // path@ref
	puts []putRequest
}

func newFakeContentsAPI() *fakeContentsAPI {
	return &fakeContentsAPI{files: make(map[string]fakeFile)}
}

func (f *fakeContentsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const prefix = "/repos/octo/site/contents/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		ref := r.URL.Query().Get("ref")
		f.gets = append(f.gets, path+"@"+ref)
		if len(f.getStatuses) > 0 {
			status := f.getStatuses[0]
			f.getStatuses = f.getStatuses[1:]
			writeJSON(w, status, map[string]any{"message": http.StatusText(status)})
			return
		}
		if f.directory {
			writeJSON(w, http.StatusOK, []map[string]any{{"type": "file", "name": "a.md", "path": path + "/a.md"}})
			return
		}
		file, ok := f.files[path+"@"+ref]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Not Found"})
			return
		}
		if file.large {
			writeJSON(w, http.StatusOK, map[string]any{
				"type":     "file",
				"encoding": "none",
				"path":     path,
				"sha":      file.sha,
				"content":  "",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type":     "file",
			"encoding": "base64",
			"path":     path,
			"sha":      file.sha,
			"content":  base64.StdEncoding.EncodeToString([]byte(file.content)),
		})
	case http.MethodPut:
		var req putRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		req.Path = path
		f.puts = append(f.puts, req)
		if f.putStatus != 0 {
			message := f.putMessage
			if message == "" {
				message = http.StatusText(f.putStatus)
			}
			writeJSON(w, f.putStatus, map[string]any{"message": message})
			return
		}
		status := http.StatusCreated
		if req.SHA != nil {
			status = http.StatusOK
		}
		writeJSON(w, status, map[string]any{
			"content": map[string]any{
				"path":     path,
				"sha":      "newsha",
				"html_url": "https://github.com/octo/site/blob/" + req.Branch + "/" + path,
			},
			"commit": map[string]any{"sha": "commitsha"},
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// newTestClient points a Client at handler without throttling.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClientWithHTTPClient(srv.Client())
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	c.gh.BaseURL = base
	c.rateLimiter = NewRateLimiterWithRate(rate.Inf, 1)
	return c
}
