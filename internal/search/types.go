// Package search implements the search engine: parsed-query retrieval
// with structural filters, snippet generation, pagination, an optional
// reranker hook, and chunk preview assembly.
package search

import "github.com/cortexfs/filesearch/internal/store"

// Item is one ranked, paginated search result.
type Item struct {
	Path    string
	Pointer string
	Snippet string
	Score   float64
	Ext     string
	MTime   float64
}

// Pagination describes the slice of the fetched batch returned to the caller.
type Pagination struct {
	Offset        int
	Returned      int
	TotalEstimate int
}

// Options carries filters and tuning knobs for one Search call.
type Options struct {
	Filters store.SearchFilters
	// Margin pads the fetched batch beyond offset+k so a reranker can
	// reorder without starving the tail of the requested page.
	Margin int
}

// Preview is the windowed excerpt returned by the preview operation.
type Preview struct {
	Path      string
	Pointer   string
	Content   string
	Truncated bool
	FileSize  int64
}

// Reranker optionally reorders (never grows) a result set using whatever
// external signal it has available (e.g. semantic similarity). It must
// document or preserve the BM25 lower-is-better score convention.
type Reranker interface {
	Rerank(query string, items []Item) ([]Item, error)
}

// CombineScore blends a BM25 score with a semantic score using the
// default weighting: 0.7 BM25 + 0.3 semantic. Both inputs and
// the output are in "higher is better" convention; callers using the raw
// BM25-lower-is-better score from Store must negate it first.
func CombineScore(ftsScore, semanticScore float64) float64 {
	return 0.7*ftsScore + 0.3*semanticScore
}
