package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cortexfs/filesearch/configs"
	"github.com/cortexfs/filesearch/internal/config"
	"github.com/cortexfs/filesearch/internal/output"
)

// mcpServerConfig is one entry in .mcp.json's mcpServers map.
type mcpServerConfig struct {
	Type    string   `json:"type,omitempty"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Cwd     string   `json:"cwd,omitempty"`
}

// mcpConfig is the root .mcp.json structure.
type mcpConfig struct {
	MCPServers map[string]mcpServerConfig `json:"mcpServers"`
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a project configuration template and MCP wiring",
		Long: `Initialize filesearch for the current directory.

This command:
1. Writes a .filesearch.yaml configuration template (unless one exists)
2. Writes or updates .mcp.json so AI clients can launch the MCP server`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .mcp.json entry")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	out := output.New(cmd.OutOrStdout())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get current directory: %w", err)
	}

	if err := writeProjectConfigTemplate(out, cwd); err != nil {
		out.Warningf("could not create .filesearch.yaml: %v", err)
	}

	if err := writeMCPConfig(out, cwd, force); err != nil {
		out.Warningf("could not write .mcp.json: %v", err)
	}

	out.Success("initialization complete")
	if !config.UserConfigExists() {
		out.Status("", "run with FILESEARCH_* env vars, or write ~/.config/filesearch/config.yaml for machine-wide defaults")
	}
	return nil
}

func writeProjectConfigTemplate(out *output.Writer, root string) error {
	yamlPath := filepath.Join(root, ".filesearch.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		out.Status("", "existing .filesearch.yaml preserved")
		return nil
	}
	ymlPath := filepath.Join(root, ".filesearch.yml")
	if _, err := os.Stat(ymlPath); err == nil {
		out.Status("", "existing .filesearch.yml preserved")
		return nil
	}

	if err := os.WriteFile(yamlPath, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("write .filesearch.yaml: %w", err)
	}
	out.Successf("created %s", yamlPath)
	return nil
}

func writeMCPConfig(out *output.Writer, root string, force bool) error {
	mcpPath := filepath.Join(root, ".mcp.json")

	existing := mcpConfig{MCPServers: make(map[string]mcpServerConfig)}
	if data, err := os.ReadFile(mcpPath); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("parse existing .mcp.json: %w", err)
		}
		if _, ok := existing.MCPServers["filesearch"]; ok && !force {
			out.Status("", "filesearch already configured in .mcp.json")
			return nil
		}
	}

	binPath, err := os.Executable()
	if err != nil {
		binPath = "filesearch"
	}

	existing.MCPServers["filesearch"] = mcpServerConfig{
		Type:    "stdio",
		Command: binPath,
		Args:    []string{"serve"},
		Cwd:     root,
	}

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal .mcp.json: %w", err)
	}
	if err := os.WriteFile(mcpPath, data, 0o644); err != nil {
		return fmt.Errorf("write .mcp.json: %w", err)
	}
	out.Successf("created %s", mcpPath)
	return nil
}
