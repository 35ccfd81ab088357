// Package config holds all aligntrack configuration: the YAML config file,
// defaults, and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all aligntrack configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Version store
	Store StoreConfig `yaml:"store"`

	// Content sources
	Sources SourcesConfig `yaml:"sources"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the model client.
type LLMConfig struct {
	Provider   string `yaml:"provider"` // anthropic, gemini
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
	CacheSize  int    `yaml:"cache_size"` // LRU entries for completion caching, 0 disables
}

// StoreConfig configures the SQLite version store.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SourcesConfig configures the content sources.
type SourcesConfig struct {
	// DocsDir is the local directory holding prd.md, prfaq.md, strategy.md
	// and tickets.json. Empty disables the local source.
	DocsDir string `yaml:"docs_dir"`

	// UseDemoFixtures enables the built-in google_docs/jira/linear/confluence
	// demo integrations.
	UseDemoFixtures bool `yaml:"use_demo_fixtures"`
}

// LoggingConfig configures categorized debug logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Categories map[string]bool `yaml:"categories"`
	Level      string          `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "aligntrack",
		Version: "0.1.0",
		LLM: LLMConfig{
			Provider:   "anthropic",
			Model:      "claude-sonnet-4-20250514",
			BaseURL:    "https://api.anthropic.com/v1",
			Timeout:    "60s",
			MaxRetries: 3,
			CacheSize:  128,
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(".aligntrack", "aligntrack.db"),
		},
		Sources: SourcesConfig{
			DocsDir:         "docs",
			UseDemoFixtures: true,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load reads the config file at path, applies environment overrides, and
// returns the result. A missing file yields the defaults (still with env
// overrides applied).
func Load(path string) (*Config, error) {
	// Pick up a local .env first so env overrides see it.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides layers environment variables over the file values.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.LLM.Provider == "anthropic" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.LLM.Provider == "gemini" {
		c.LLM.APIKey = key
	}
	if provider := os.Getenv("ALIGNTRACK_LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
		switch provider {
		case "anthropic":
			if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
				c.LLM.APIKey = key
			}
		case "gemini":
			if key := os.Getenv("GEMINI_API_KEY"); key != "" {
				c.LLM.APIKey = key
			}
		}
	}
	if model := os.Getenv("ALIGNTRACK_LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if path := os.Getenv("ALIGNTRACK_DB"); path != "" {
		c.Store.DatabasePath = path
	}
	if dir := os.Getenv("ALIGNTRACK_DOCS_DIR"); dir != "" {
		c.Sources.DocsDir = dir
	}
	if os.Getenv("ALIGNTRACK_DEBUG") == "1" {
		c.Logging.DebugMode = true
		c.Logging.Level = "debug"
	}
}

// ParsedTimeout parses the configured per-call timeout, defaulting to 60s.
func (c LLMConfig) ParsedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// DefaultPath returns the conventional config location inside workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".aligntrack", "config.yaml")
}
