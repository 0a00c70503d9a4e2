package search

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexfs/filesearch/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	eng, err := New(st, 16, nil)
	require.NoError(t, err)
	return eng, st
}

func index(t *testing.T, st *store.Store, path, content, ext string, mtime float64) {
	t.Helper()
	_, err := st.Index(context.Background(), path, int64(len(content)), mtime, ext, "/root", []string{content})
	require.NoError(t, err)
}

func TestSearch_ReturnsMatchingItemsWithSnippets(t *testing.T) {
	eng, st := newTestEngine(t)
	index(t, st, "/root/a.txt", "the quick brown fox jumps over the lazy dog", ".txt", 1000)
	index(t, st, "/root/b.txt", "an unrelated document about cats", ".txt", 1001)

	items, page, err := eng.Search(context.Background(), "fox", 10, 0, Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Path, "a.txt")
	assert.Contains(t, items[0].Snippet, "<mark>")
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, 1, page.Returned)
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	eng, st := newTestEngine(t)
	index(t, st, "/root/a.txt", "alpha content", ".txt", 1000)
	index(t, st, "/root/b.txt", "beta content", ".txt", 2000)

	items, page, err := eng.Search(context.Background(), "", 10, 0, Options{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, page.TotalEstimate)
	// SearchAll orders by mtime descending.
	assert.Contains(t, items[0].Path, "b.txt")
}

func TestSearch_PaginationConsistency(t *testing.T) {
	eng, st := newTestEngine(t)
	for i := 0; i < 5; i++ {
		index(t, st, "/root/doc"+string(rune('a'+i))+".txt", "pagination token shared across docs", ".txt", float64(1000+i))
	}

	first, _, err := eng.Search(context.Background(), "pagination", 2, 0, Options{})
	require.NoError(t, err)
	second, _, err := eng.Search(context.Background(), "pagination", 2, 2, Options{})
	require.NoError(t, err)
	combined, _, err := eng.Search(context.Background(), "pagination", 4, 0, Options{})
	require.NoError(t, err)

	require.Len(t, combined, 4)
	var stitched []string
	for _, it := range append(append([]Item{}, first...), second...) {
		stitched = append(stitched, it.Path+it.Pointer)
	}
	var want []string
	for _, it := range combined {
		want = append(want, it.Path+it.Pointer)
	}
	assert.ElementsMatch(t, want, stitched)
}

func TestSearch_RejectsInvalidArgs(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, _, err := eng.Search(context.Background(), "x", 0, 0, Options{})
	assert.Error(t, err)
	_, _, err = eng.Search(context.Background(), "x", 1, -1, Options{})
	assert.Error(t, err)
}

func TestSearch_ExtensionFilterNarrowsResults(t *testing.T) {
	eng, st := newTestEngine(t)
	index(t, st, "/root/a.txt", "shared keyword here", ".txt", 1000)
	index(t, st, "/root/a.py", "shared keyword here", ".py", 1001)

	items, _, err := eng.Search(context.Background(), "shared", 10, 0, Options{
		Filters: store.SearchFilters{Extensions: []string{".py"}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Path, "a.py")
}

func TestPreview_ShortChunkIsNotTruncated(t *testing.T) {
	eng, st := newTestEngine(t)
	index(t, st, "/root/a.txt", "short content", ".txt", 1000)

	p, err := eng.Preview(context.Background(), "/root/a.txt", "", 100, 100)
	require.NoError(t, err)
	assert.False(t, p.Truncated)
	assert.Equal(t, "short content", p.Content)
}

func TestPreview_LongChunkIsCenteredAndTruncated(t *testing.T) {
	eng, st := newTestEngine(t)
	content := strings.Repeat("x", 5000)
	index(t, st, "/root/a.txt", content, ".txt", 1000)

	p, err := eng.Preview(context.Background(), "/root/a.txt", "", 100, 100)
	require.NoError(t, err)
	assert.True(t, p.Truncated)
	assert.LessOrEqual(t, len([]rune(p.Content)), 200)
}

func TestPreview_UnknownPathFailsNotIndexed(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Preview(context.Background(), "/root/missing.txt", "", 50, 50)
	assert.Error(t, err)
}

func TestForget_RemovesFileFromFutureSearches(t *testing.T) {
	eng, st := newTestEngine(t)
	index(t, st, "/root/a.txt", "forgettable content", ".txt", 1000)

	items, _, err := eng.Search(context.Background(), "forgettable", 10, 0, Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, eng.Forget(context.Background(), "/root/a.txt"))

	items, _, err = eng.Search(context.Background(), "forgettable", 10, 0, Options{})
	require.NoError(t, err)
	assert.Len(t, items, 0)
}
