package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete filesearch configuration.
type Config struct {
	DBPath              string        `yaml:"db_path" json:"db_path"`
	AllowedRoots        []string      `yaml:"allowed_roots" json:"allowed_roots"`
	SupportedExtensions []string      `yaml:"supported_extensions" json:"supported_extensions"`
	MaxFileSizeBytes    int64         `yaml:"max_file_size_bytes" json:"max_file_size_bytes"`
	ChunkSize           int           `yaml:"chunk_size" json:"chunk_size"`
	ChunkOverlap        int           `yaml:"chunk_overlap" json:"chunk_overlap"`
	HiddenFiles         bool          `yaml:"hidden_files" json:"hidden_files"`
	FollowSymlinks      bool          `yaml:"follow_symlinks" json:"follow_symlinks"`
	EnableReranker      bool          `yaml:"enable_reranker" json:"enable_reranker"`
	LogLevel            string        `yaml:"log_level" json:"log_level"`
	IndexWorkers        int           `yaml:"index_workers" json:"index_workers"`
	LowPriorityDelay    time.Duration `yaml:"low_priority_delay" json:"low_priority_delay"`
	QueryCacheSize      int           `yaml:"query_cache_size" json:"query_cache_size"`
}

var defaultSupportedExtensions = []string{
	".txt", ".md", ".json", ".xml", ".yaml", ".yml", ".sql", ".html", ".htm",
	".csv", ".pdf", ".docx", ".pptx", ".xlsx", ".xls", ".zip",
	".go", ".py", ".js", ".ts", ".java", ".c", ".cpp", ".h", ".rb", ".rs",
}

// NewConfig returns a Config with sensible default crawl/chunk/search
// parameters.
func NewConfig() *Config {
	return &Config{
		DBPath:              defaultDBPath(),
		AllowedRoots:        nil,
		SupportedExtensions: append([]string{}, defaultSupportedExtensions...),
		MaxFileSizeBytes:    50 * 1024 * 1024,
		ChunkSize:           1500,
		ChunkOverlap:        200,
		HiddenFiles:         false,
		FollowSymlinks:      false,
		EnableReranker:      false,
		LogLevel:            "info",
		IndexWorkers:        runtime.NumCPU(),
		LowPriorityDelay:    10 * time.Millisecond,
		QueryCacheSize:      256,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".filesearch", "data", "index.db")
	}
	return filepath.Join(home, ".filesearch", "data", "index.db")
}

// GetUserConfigPath returns the user/global configuration file path,
// honoring XDG_CONFIG_HOME when set.
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filesearch", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "filesearch", "config.yaml")
	}
	return filepath.Join(home, ".config", "filesearch", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists reports whether the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

func loadUserConfig() (*Config, error) {
	path := GetUserConfigPath()
	if !fileExists(path) {
		return nil, nil
	}
	cfg := NewConfig()
	if err := cfg.loadYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load builds a Config by layering, in order of increasing precedence:
// hardcoded defaults, the user config, the project config (.filesearch.yaml
// in dir), then FILESEARCH_* environment variables. The result is validated
// before return.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := loadUserConfig(); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromFile(dir string) error {
	yamlPath := filepath.Join(dir, ".filesearch.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return c.loadYAML(yamlPath)
	}
	ymlPath := filepath.Join(dir, ".filesearch.yml")
	if _, err := os.Stat(ymlPath); err == nil {
		return c.loadYAML(ymlPath)
	}
	return nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if len(other.AllowedRoots) > 0 {
		c.AllowedRoots = other.AllowedRoots
	}
	if len(other.SupportedExtensions) > 0 {
		c.SupportedExtensions = other.SupportedExtensions
	}
	if other.MaxFileSizeBytes != 0 {
		c.MaxFileSizeBytes = other.MaxFileSizeBytes
	}
	if other.ChunkSize != 0 {
		c.ChunkSize = other.ChunkSize
	}
	if other.ChunkOverlap != 0 {
		c.ChunkOverlap = other.ChunkOverlap
	}
	// Booleans can't be distinguished from "unset" after YAML decode, so
	// HiddenFiles/FollowSymlinks/EnableReranker are merged unconditionally
	// whenever a project/user file is present at all.
	c.HiddenFiles = other.HiddenFiles
	c.FollowSymlinks = other.FollowSymlinks
	c.EnableReranker = other.EnableReranker
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.IndexWorkers != 0 {
		c.IndexWorkers = other.IndexWorkers
	}
	if other.LowPriorityDelay != 0 {
		c.LowPriorityDelay = other.LowPriorityDelay
	}
	if other.QueryCacheSize != 0 {
		c.QueryCacheSize = other.QueryCacheSize
	}
}

// applyEnvOverrides applies FILESEARCH_* environment variable overrides,
// highest precedence in the layering order.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FILESEARCH_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FILESEARCH_ALLOWED_ROOTS"); v != "" {
		c.AllowedRoots = strings.Split(v, string(os.PathListSeparator))
	}
	if v := os.Getenv("FILESEARCH_MAX_FILE_SIZE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv("FILESEARCH_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv("FILESEARCH_CHUNK_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkOverlap = n
		}
	}
	if v := os.Getenv("FILESEARCH_HIDDEN_FILES"); v != "" {
		c.HiddenFiles = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("FILESEARCH_FOLLOW_SYMLINKS"); v != "" {
		c.FollowSymlinks = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("FILESEARCH_ENABLE_RERANKER"); v != "" {
		c.EnableReranker = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("FILESEARCH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FILESEARCH_INDEX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IndexWorkers = n
		}
	}
	if v := os.Getenv("FILESEARCH_LOW_PRIORITY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.LowPriorityDelay = d
		}
	}
}

// Validate rejects a Config with out-of-range or unsupported fields.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be less than chunk_size (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxFileSizeBytes < 0 {
		return fmt.Errorf("max_file_size_bytes must be non-negative, got %d", c.MaxFileSizeBytes)
	}
	if c.IndexWorkers <= 0 {
		return fmt.Errorf("index_workers must be positive, got %d", c.IndexWorkers)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	return nil
}

// SupportedExtensionSet returns SupportedExtensions as a lookup set, the
// shape the crawler expects.
func (c *Config) SupportedExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.SupportedExtensions))
	for _, ext := range c.SupportedExtensions {
		set[strings.ToLower(ext)] = true
	}
	return set
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadUserConfig loads the user configuration file, returning a nil config
// and nil error when the file does not exist.
func LoadUserConfig() (*Config, error) {
	return loadUserConfig()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
