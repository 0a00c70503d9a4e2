package search

import (
	"context"

	"github.com/cortexfs/filesearch/internal/ferrors"
	"github.com/cortexfs/filesearch/internal/query"
	"github.com/cortexfs/filesearch/internal/store"
)

const defaultMargin = 10

// Engine runs parsed queries against a Store, applies an optional reranker,
// and slices the fetched batch into a page.
type Engine struct {
	store    *store.Store
	queries  *query.Cache
	reranker Reranker
}

// New creates an Engine over st. queryCacheSize bounds the parsed-query
// cache; pass 0 to disable caching. reranker may be nil.
func New(st *store.Store, queryCacheSize int, reranker Reranker) (*Engine, error) {
	var cache *query.Cache
	if queryCacheSize > 0 {
		c, err := query.NewCache(queryCacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return &Engine{store: st, queries: cache, reranker: reranker}, nil
}

// Search implements the Search Engine operation: parse the query, retrieve a
// ranked batch sized offset+k+margin, rerank if configured, and return the
// page at [offset:offset+k].
func (e *Engine) Search(ctx context.Context, queryStr string, k, offset int, opts Options) ([]Item, Pagination, error) {
	if k < 1 {
		return nil, Pagination{}, ferrors.BadFilter("k must be >= 1")
	}
	if offset < 0 {
		return nil, Pagination{}, ferrors.BadFilter("offset must be >= 0")
	}

	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	fetchLimit := offset + k + margin

	parsed := e.parse(queryStr)
	snippetOpts := store.DefaultSnippetOptions()

	var rows []store.SearchRow
	var err error
	if parsed.MatchAll {
		rows, err = e.store.SearchAll(ctx, opts.Filters, fetchLimit, snippetOpts.MaxTokens*4)
	} else {
		rows, err = e.store.Search(ctx, parsed.Expr, opts.Filters, fetchLimit, snippetOpts)
	}
	if err != nil {
		return nil, Pagination{}, err
	}

	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = Item{
			Path:    r.Path,
			Pointer: r.Pointer,
			Snippet: r.Snippet,
			Score:   r.Score,
			Ext:     r.Ext,
			MTime:   r.MTime,
		}
	}

	if e.reranker != nil {
		reranked, err := e.reranker.Rerank(queryStr, items)
		if err != nil {
			return nil, Pagination{}, err
		}
		items = reranked
	}

	total := len(items)
	page := pageSlice(items, offset, k)

	return page, Pagination{Offset: offset, Returned: len(page), TotalEstimate: total}, nil
}

// Forget removes a file and its chunks from the index, per the forget
// inward contract: no error when the path was never indexed.
func (e *Engine) Forget(ctx context.Context, path string) error {
	return e.store.DeleteFile(ctx, path)
}

func (e *Engine) parse(queryStr string) query.Parsed {
	if e.queries != nil {
		return e.queries.Get(queryStr)
	}
	return query.Parse(queryStr)
}

// pageSlice returns items[offset:offset+k], clamped to the slice bounds.
func pageSlice(items []Item, offset, k int) []Item {
	if offset >= len(items) {
		return nil
	}
	end := offset + k
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
