package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/crawler"
	"github.com/cortexfs/filesearch/internal/output"
	"github.com/cortexfs/filesearch/internal/store"
)

type indexOptions struct {
	full    bool
	low     bool
	dbPath  string
	workers int
}

func newIndexCmd() *cobra.Command {
	var opts indexOptions

	cmd := &cobra.Command{
		Use:   "index <root>",
		Short: "Crawl a root directory and update the search index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.full, "full", false, "Reindex every file, ignoring the existing snapshot")
	cmd.Flags().BoolVar(&opts.low, "low-priority", false, "Yield between files to bound resource use")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Override the configured index database path")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Override the configured extraction worker count")

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, root string, opts indexOptions) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.workers > 0 {
		cfg.IndexWorkers = opts.workers
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

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

	mode := crawler.ModeIncremental
	if opts.full {
		mode = crawler.ModeFull
	}
	priority := crawler.PriorityNormal
	if opts.low {
		priority = crawler.PriorityLow
	}

	result, err := c.IndexRoot(ctx, root, mode, priority)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if result.Cancelled {
		out.Warning("indexing cancelled")
	}
	out.Successf("indexed=%d skipped=%d removed=%d errors=%d duration_ms=%d",
		result.Indexed, result.Skipped, result.Removed, result.Errors, result.DurationMS)
	return nil
}
