package crawler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexfs/filesearch/internal/store"
)

func newTestCrawler(t *testing.T) (*Crawler, *store.Store) {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := Config{
		SupportedExtensions: map[string]bool{".txt": true, ".md": true},
		MaxFileSizeBytes:    1 << 20,
		ChunkSize:           500,
		ChunkOverlap:        50,
		Workers:             2,
	}
	return New(st, cfg), st
}

func TestIndexRoot_FreshIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("# Title\n\nhello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.bin"), []byte("hello"), 0o644))

	c, st := newTestCrawler(t)
	result, err := c.IndexRoot(context.Background(), dir, ModeFull, PriorityNormal)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Indexed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Removed)

	rows, err := st.Search(context.Background(), "hello", store.SearchFilters{}, 10, store.DefaultSnippetOptions())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestIndexRoot_IncrementalNoopOnSecondRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("hello"), 0o644))

	c, _ := newTestCrawler(t)
	_, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)

	result, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, 0, result.Removed)
}

func TestIndexRoot_ModificationReindexesOnlyChangedFile(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.md"), []byte("hello"), 0o644))

	c, st := newTestCrawler(t)
	_, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(pathA, []byte("goodbye"), 0o644))
	future := time.Now().Add(time.Second)
	require.NoError(t, os.Chtimes(pathA, future, future))

	result, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Skipped)

	rows, err := st.Search(context.Background(), "hello", store.SearchFilters{}, 10, store.DefaultSnippetOptions())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Path, "b.md")
}

func TestIndexRoot_DeletionReconciledOnNextIncremental(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(pathA, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("hello"), 0o644))

	c, _ := newTestCrawler(t)
	_, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)

	require.NoError(t, os.Remove(pathB))

	result, err := c.IndexRoot(context.Background(), dir, ModeIncremental, PriorityNormal)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Removed)
}

func TestIndexRoot_RejectsMissingRoot(t *testing.T) {
	c, _ := newTestCrawler(t)
	_, err := c.IndexRoot(context.Background(), "/does/not/exist/anywhere", ModeFull, PriorityNormal)
	assert.Error(t, err)
}

func TestIndexRoot_RejectsUnauthorizedRoot(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open("")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	c := New(st, Config{AllowedRoots: []string{"/some/other/allowed/root"}})
	_, err = c.IndexRoot(context.Background(), dir, ModeFull, PriorityNormal)
	assert.Error(t, err)
}

func TestIndexRoot_ExtensionFilterScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("pipeline"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("pipeline"), 0o644))

	st, err := store.Open("")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	c := New(st, Config{
		SupportedExtensions: map[string]bool{".txt": true, ".py": true},
		ChunkSize:           500,
		ChunkOverlap:        50,
	})
	_, err = c.IndexRoot(context.Background(), dir, ModeFull, PriorityNormal)
	require.NoError(t, err)

	rows, err := st.Search(context.Background(), "pipeline", store.SearchFilters{Extensions: []string{".py"}}, 10, store.DefaultSnippetOptions())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Path, "a.py")
}
