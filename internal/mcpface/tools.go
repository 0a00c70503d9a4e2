package mcpface

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexfs/filesearch/internal/crawler"
	"github.com/cortexfs/filesearch/internal/search"
	"github.com/cortexfs/filesearch/internal/store"
)

func (s *Server) handleIndexRoot(ctx context.Context, _ *mcp.CallToolRequest, input IndexRootInput) (
	*mcp.CallToolResult,
	IndexRootOutput,
	error,
) {
	if input.Root == "" {
		return nil, IndexRootOutput{}, newInvalidParamsError("root parameter is required")
	}

	mode := crawler.ModeIncremental
	if input.Full {
		mode = crawler.ModeFull
	}
	priority := crawler.PriorityNormal
	if input.Low {
		priority = crawler.PriorityLow
	}

	result, err := s.crawler.IndexRoot(ctx, input.Root, mode, priority)
	if err != nil {
		return nil, IndexRootOutput{}, mapError(err)
	}

	return nil, IndexRootOutput{
		Indexed:    result.Indexed,
		Skipped:    result.Skipped,
		Removed:    result.Removed,
		Errors:     result.Errors,
		DurationMS: result.DurationMS,
		Cancelled:  result.Cancelled,
	}, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if input.Query == "" {
		return nil, SearchOutput{}, newInvalidParamsError("query parameter is required")
	}

	k := input.K
	if k <= 0 {
		k = 10
	}

	items, page, err := s.engine.Search(ctx, input.Query, k, input.Offset, search.Options{
		Filters: store.SearchFilters{
			Extensions: input.Extensions,
			Years:      input.Years,
			Roots:      input.Roots,
		},
	})
	if err != nil {
		return nil, SearchOutput{}, mapError(err)
	}

	out := SearchOutput{
		Items:         make([]SearchItem, len(items)),
		Offset:        page.Offset,
		Returned:      page.Returned,
		TotalEstimate: page.TotalEstimate,
	}
	for i, it := range items {
		out.Items[i] = SearchItem{
			Path:    it.Path,
			Pointer: it.Pointer,
			Snippet: it.Snippet,
			Score:   it.Score,
			Ext:     it.Ext,
			MTime:   it.MTime,
		}
	}

	return nil, out, nil
}

func (s *Server) handlePreview(ctx context.Context, _ *mcp.CallToolRequest, input PreviewInput) (
	*mcp.CallToolResult,
	PreviewOutput,
	error,
) {
	if input.Path == "" {
		return nil, PreviewOutput{}, newInvalidParamsError("path parameter is required")
	}

	before := input.Before
	if before <= 0 {
		before = 100
	}
	after := input.After
	if after <= 0 {
		after = 100
	}

	p, err := s.engine.Preview(ctx, input.Path, input.Pointer, before, after)
	if err != nil {
		return nil, PreviewOutput{}, mapError(err)
	}

	return nil, PreviewOutput{
		Path:      p.Path,
		Pointer:   p.Pointer,
		Content:   p.Content,
		Truncated: p.Truncated,
		FileSize:  p.FileSize,
	}, nil
}

func (s *Server) handleForget(ctx context.Context, _ *mcp.CallToolRequest, input ForgetInput) (
	*mcp.CallToolResult,
	ForgetOutput,
	error,
) {
	if input.Path == "" {
		return nil, ForgetOutput{}, newInvalidParamsError("path parameter is required")
	}

	if err := s.engine.Forget(ctx, input.Path); err != nil {
		return nil, ForgetOutput{}, mapError(err)
	}

	return nil, ForgetOutput{Path: input.Path}, nil
}
