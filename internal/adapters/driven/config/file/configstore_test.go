package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `
[github]
owner = "octo"
repo = "site"
path = "content/posts"

[github.branches]
default = "main"
draft = "drafts"

[drive]
folder_id = "abc123"
page_size = 50

[output]
force_commit = false
extension = "mdx"
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigStore_Success(t *testing.T) {
	path := writeProject(t, sampleProject)

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, path, store.Path())
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, store.Path())
}

func TestNewConfigStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	_, ok := store.Get("github.owner")
	assert.False(t, ok)
	assert.Nil(t, store.GetStringMap("github.branches"))
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	path := writeProject(t, "[github\nowner = ")

	_, err := NewConfigStore(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestNewConfigStore_ReadError(t *testing.T) {
	// A directory cannot be read as a file.
	_, err := NewConfigStore(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(writeProject(t, sampleProject))
	require.NoError(t, err)

	assert.Equal(t, "octo", store.GetString("github.owner"))
	assert.Equal(t, "content/posts", store.GetString("github.path"))
	assert.Equal(t, 50, store.GetInt("drive.page_size"))
	assert.False(t, store.GetBool("output.force_commit"))
	assert.Equal(t, "mdx", store.GetString("output.extension"))

	val, ok := store.Get("output.force_commit")
	assert.True(t, ok)
	assert.Equal(t, false, val)
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(writeProject(t, sampleProject))
	require.NoError(t, err)

	assert.Empty(t, store.GetString("drive.page_size"))
	assert.Zero(t, store.GetInt("github.owner"))
	assert.False(t, store.GetBool("github.owner"))
	assert.Empty(t, store.GetString("nope"))
}

func TestConfigStore_GetStringMap(t *testing.T) {
	store, err := NewConfigStore(writeProject(t, sampleProject))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"default": "main", "draft": "drafts"}, store.GetStringMap("github.branches"))
	// Only direct children are collected.
	assert.Equal(t, map[string]string{"owner": "octo", "repo": "site", "path": "content/posts"}, store.GetStringMap("github"))
}

func TestConfigStore_Reload(t *testing.T) {
	path := writeProject(t, sampleProject)
	store, err := NewConfigStore(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[github]\nowner = \"other\"\n"), 0o600))
	require.NoError(t, store.Load())

	assert.Equal(t, "other", store.GetString("github.owner"))
	assert.Empty(t, store.GetString("github.repo"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(writeProject(t, sampleProject))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.GetString("github.owner")
			_ = store.GetStringMap("github.branches")
			_ = store.Load()
		}()
	}
	wg.Wait()

	assert.Equal(t, "octo", store.GetString("github.owner"))
}

func TestFlattenMap(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"b": int64(1), "c": map[string]any{"d": "x"}},
		"e": true,
	}

	assert.Equal(t, map[string]any{"a.b": int64(1), "a.c.d": "x", "e": true}, flattenMap(in, ""))
}
