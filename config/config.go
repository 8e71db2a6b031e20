package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the context retrieval engine.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorkspaceConfig controls file enumeration and reading.
type WorkspaceConfig struct {
	Excludes        []string `yaml:"excludes"`
	MaxFileSize     int64    `yaml:"max_file_size"`
	ReadConcurrency int      `yaml:"read_concurrency"`
}

// RetrieveConfig controls budgets and ranking weights for intent-driven
// retrieval.
type RetrieveConfig struct {
	MaxTokens          int      `yaml:"max_tokens"`
	RelevanceWeight    float64  `yaml:"relevance_weight"`
	RecencyWeight      float64  `yaml:"recency_weight"`
	SizeWeight         float64  `yaml:"size_weight"`
	PreferredLanguages []string `yaml:"preferred_languages"`
}

// CacheConfig controls the structural-analysis caches.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Persistent bool   `yaml:"persistent"`
	MaxEntries int    `yaml:"max_entries"`
	TTLMinutes int    `yaml:"ttl_minutes"`
	Path       string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Excludes:        nil, // engine defaults apply
			MaxFileSize:     1 << 20,
			ReadConcurrency: 8,
		},
		Retrieve: RetrieveConfig{
			MaxTokens:          8000,
			RelevanceWeight:    0.6,
			RecencyWeight:      0.25,
			SizeWeight:         0.15,
			PreferredLanguages: []string{"typescript", "javascript", "go", "python"},
		},
		Cache: CacheConfig{
			Enabled:    true,
			Persistent: false,
			MaxEntries: 500,
			TTLMinutes: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for codectx.yaml,
// then .codectx/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "codectx.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".codectx", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LogLevel maps the configured level string to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CacheDBPath returns the path to the persistent analysis cache.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, ".codectx", "analysis.db")
}

// EnsureStateDir ensures the .codectx directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".codectx"), 0755)
}
