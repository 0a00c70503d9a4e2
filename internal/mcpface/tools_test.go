package mcpface

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.NewConfig()
	cfg.QueryCacheSize = 16

	srv, err := NewServer(st, cfg, nil)
	require.NoError(t, err)
	return srv, st
}

func indexFile(t *testing.T, st *store.Store, path, content, ext string, mtime float64) {
	t.Helper()
	_, err := st.Index(context.Background(), path, int64(len(content)), mtime, ext, "/root", []string{content})
	require.NoError(t, err)
}

func TestHandleSearch_ReturnsItems(t *testing.T) {
	srv, st := newTestServer(t)
	indexFile(t, st, "/root/a.txt", "the quick brown fox jumps over the lazy dog", ".txt", 1000)

	_, out, err := srv.handleSearch(context.Background(), nil, SearchInput{Query: "fox"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Contains(t, out.Items[0].Path, "a.txt")
	assert.Equal(t, 1, out.Returned)
}

func TestHandleSearch_RejectsEmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	_, _, err := srv.handleSearch(context.Background(), nil, SearchInput{Query: ""})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, errCodeInvalidParams, toolErr.Code)
}

func TestHandleSearch_DefaultsKWhenZero(t *testing.T) {
	srv, st := newTestServer(t)
	for i := 0; i < 3; i++ {
		indexFile(t, st, "/root/f"+string(rune('a'+i))+".txt", "shared keyword content here", ".txt", float64(1000+i))
	}

	_, out, err := srv.handleSearch(context.Background(), nil, SearchInput{Query: "shared"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
}

func TestHandlePreview_ReturnsChunkContent(t *testing.T) {
	srv, st := newTestServer(t)
	indexFile(t, st, "/root/a.txt", "short chunk content", ".txt", 1000)

	_, out, err := srv.handlePreview(context.Background(), nil, PreviewInput{Path: "/root/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "short chunk content", out.Content)
	assert.False(t, out.Truncated)
}

func TestHandlePreview_UnknownPathFails(t *testing.T) {
	srv, _ := newTestServer(t)
	_, _, err := srv.handlePreview(context.Background(), nil, PreviewInput{Path: "/root/missing.txt"})
	require.Error(t, err)
}

func TestHandlePreview_RejectsEmptyPath(t *testing.T) {
	srv, _ := newTestServer(t)
	_, _, err := srv.handlePreview(context.Background(), nil, PreviewInput{Path: ""})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, errCodeInvalidParams, toolErr.Code)
}

func TestHandleForget_RemovesFileFromSearch(t *testing.T) {
	srv, st := newTestServer(t)
	indexFile(t, st, "/root/a.txt", "removable content", ".txt", 1000)

	_, _, err := srv.handleSearch(context.Background(), nil, SearchInput{Query: "removable"})
	require.NoError(t, err)

	_, out, err := srv.handleForget(context.Background(), nil, ForgetInput{Path: "/root/a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/root/a.txt", out.Path)

	_, searchOut, err := srv.handleSearch(context.Background(), nil, SearchInput{Query: "removable"})
	require.NoError(t, err)
	assert.Empty(t, searchOut.Items)
}

func TestHandleForget_AbsentPathIsNotAnError(t *testing.T) {
	srv, _ := newTestServer(t)
	_, _, err := srv.handleForget(context.Background(), nil, ForgetInput{Path: "/root/never-indexed.txt"})
	require.NoError(t, err)
}

func TestHandleIndexRoot_RejectsEmptyRoot(t *testing.T) {
	srv, _ := newTestServer(t)
	_, _, err := srv.handleIndexRoot(context.Background(), nil, IndexRootInput{Root: ""})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, errCodeInvalidParams, toolErr.Code)
}
