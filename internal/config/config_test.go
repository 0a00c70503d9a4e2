package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, 1500, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.False(t, cfg.HiddenFiles)
	assert.False(t, cfg.FollowSymlinks)
	assert.False(t, cfg.EnableReranker)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Millisecond, cfg.LowPriorityDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yamlContent := "chunk_size: 800\nchunk_overlap: 100\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".filesearch.yaml"), []byte(yamlContent), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.ChunkSize)
	assert.Equal(t, 100, cfg.ChunkOverlap)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_NoProjectConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, NewConfig().ChunkSize, cfg.ChunkSize)
}

func TestLoad_EnvOverridesProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".filesearch.yaml"), []byte("chunk_size: 800\n"), 0o644))

	t.Setenv("FILESEARCH_CHUNK_SIZE", "2000")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.ChunkSize)
}

func TestValidate_RejectsOverlapGEQSize(t *testing.T) {
	cfg := NewConfig()
	cfg.ChunkOverlap = cfg.ChunkSize
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := NewConfig()
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsZeroWorkers(t *testing.T) {
	cfg := NewConfig()
	cfg.IndexWorkers = 0
	assert.Error(t, cfg.Validate())
}

func TestSupportedExtensionSet_LowercasesEntries(t *testing.T) {
	cfg := NewConfig()
	cfg.SupportedExtensions = []string{".TXT", ".Md"}
	set := cfg.SupportedExtensionSet()
	assert.True(t, set[".txt"])
	assert.True(t, set[".md"])
}

func TestGetUserConfigPath_HonorsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	assert.Equal(t, "/custom/xdg/filesearch/config.yaml", GetUserConfigPath())
}
