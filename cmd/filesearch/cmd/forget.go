package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/output"
	"github.com/cortexfs/filesearch/internal/search"
	"github.com/cortexfs/filesearch/internal/store"
)

func newForgetCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "forget <path>",
		Short: "Remove a file from the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForget(cmd.Context(), cmd, args[0], dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Override the configured index database path")
	return cmd
}

func runForget(ctx context.Context, cmd *cobra.Command, path, dbPath string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
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

	if err := eng.Forget(ctx, path); err != nil {
		return err
	}

	output.New(cmd.OutOrStdout()).Successf("forgot %s", path)
	return nil
}
