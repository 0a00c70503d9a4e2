package mcpface

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/crawler"
	"github.com/cortexfs/filesearch/internal/search"
	"github.com/cortexfs/filesearch/internal/store"
	"github.com/cortexfs/filesearch/pkg/version"
)

// Server is the MCP server exposing the index_root, search, preview, and
// forget operations to AI clients over stdio.
type Server struct {
	mcp     *mcp.Server
	store   *store.Store
	engine  *search.Engine
	crawler *crawler.Crawler
	cfg     *config.Config
	logger  *slog.Logger
}

// NewServer wires store, engine, and crawler into an MCP server. reranker
// may be nil.
func NewServer(st *store.Store, cfg *config.Config, reranker search.Reranker) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	eng, err := search.New(st, cfg.QueryCacheSize, reranker)
	if err != nil {
		return nil, fmt.Errorf("create search engine: %w", err)
	}

	c := crawler.New(st, crawler.Config{
		AllowedRoots:        cfg.AllowedRoots,
		SupportedExtensions: cfg.SupportedExtensionSet(),
		MaxFileSizeBytes:    cfg.MaxFileSizeBytes,
		ChunkSize:           cfg.ChunkSize,
		ChunkOverlap:        cfg.ChunkOverlap,
		HiddenFiles:         cfg.HiddenFiles,
		FollowSymlinks:      cfg.FollowSymlinks,
		Workers:             cfg.IndexWorkers,
	})

	s := &Server{
		store:   st,
		engine:  eng,
		crawler: c,
		cfg:     cfg,
		logger:  slog.Default(),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "filesearch",
		Version: version.Version,
	}, nil)

	s.registerTools()
	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_root",
		Description: "Crawl a root directory and update the search index. Detects changed files against the existing snapshot unless full reindexing is requested.",
	}, s.handleIndexRoot)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Search the index for a query, returning ranked results with highlighted snippets; pages are selected with offset and k.",
	}, s.handleSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "preview",
		Description: "Show a windowed excerpt of an indexed chunk, centered on its content.",
	}, s.handlePreview)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "forget",
		Description: "Remove a file and its chunks from the index.",
	}, s.handleForget)

	s.logger.Debug("registered mcp tools", slog.Int("count", 4))
}

// Serve runs the server over stdio until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting mcp server", slog.String("transport", "stdio"))
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("mcp server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("mcp server stopped")
	return nil
}
