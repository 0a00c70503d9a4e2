package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/mcpface"
	"github.com/cortexfs/filesearch/internal/store"
)

func newServeCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Override the configured index database path")
	return cmd
}

func runServe(cmd *cobra.Command, dbPath string) error {
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

	srv, err := mcpface.NewServer(st, cfg, nil)
	if err != nil {
		return err
	}

	return srv.Serve(cmd.Context())
}
