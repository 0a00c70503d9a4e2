package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/output"
	"github.com/cortexfs/filesearch/internal/search"
	"github.com/cortexfs/filesearch/internal/store"
)

type previewOptions struct {
	pointer string
	before  int
	after   int
	dbPath  string
}

func newPreviewCmd() *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview <path>",
		Short: "Show a windowed excerpt of an indexed chunk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "Chunk pointer (defaults to chunk_0)")
	cmd.Flags().IntVar(&opts.before, "before", 100, "Characters added to the preview window (the before+after window is centered in the chunk)")
	cmd.Flags().IntVar(&opts.after, "after", 100, "Characters added to the preview window (the before+after window is centered in the chunk)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Override the configured index database path")

	return cmd
}

func runPreview(ctx context.Context, cmd *cobra.Command, path string, opts previewOptions) error {
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

	p, err := eng.Preview(ctx, path, opts.pointer, opts.before, opts.after)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	out.Code(p.Content)
	if p.Truncated {
		out.Status("", "truncated")
	}
	return nil
}
