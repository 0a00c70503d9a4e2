package cmd

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/output"
	"github.com/cortexfs/filesearch/internal/search"
	"github.com/cortexfs/filesearch/internal/store"
)

type searchOptions struct {
	limit      int
	offset     int
	format     string
	extensions []string
	years      []int
	roots      []string
	dbPath     string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Result offset for pagination")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", nil, "Filter by extension (repeatable)")
	cmd.Flags().IntSliceVar(&opts.years, "year", nil, "Filter by modification year (repeatable)")
	cmd.Flags().StringSliceVar(&opts.roots, "root", nil, "Filter by root path prefix (repeatable)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Override the configured index database path")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	eng, err := search.New(st, cfg.QueryCacheSize, nil)
	if err != nil {
		return err
	}

	items, page, err := eng.Search(ctx, query, opts.limit, opts.offset, search.Options{
		Filters: store.SearchFilters{
			Extensions: opts.extensions,
			Years:      opts.years,
			Roots:      opts.roots,
		},
	})
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Items      []search.Item     `json:"items"`
			Pagination search.Pagination `json:"pagination"`
		}{items, page})
	}

	if len(items) == 0 {
		out.Status("", "no results")
		return nil
	}
	for _, it := range items {
		out.Statusf("", "%s [%s] score=%.3f\n    %s", it.Path, it.Pointer, it.Score, it.Snippet)
	}
	return nil
}
