package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all PagePal configuration.
type Config struct {
	// DataDir is where shelf lists (and the sqlite db) live.
	DataDir string `yaml:"data_dir"`

	// Backend selects the store: "json" (default) or "sqlite".
	Backend string `yaml:"backend"`

	// Theme is the initial appearance theme (classic, neon, mono).
	Theme string `yaml:"theme"`

	Seed SeedConfig `yaml:"seed"`
}

// SeedConfig configures the one-shot remote imports.
type SeedConfig struct {
	BooksURL  string `yaml:"books_url"`
	MoviesURL string `yaml:"movies_url"`

	// Limit caps how many items one import produces.
	Limit int `yaml:"limit"`

	// MinLoading is the minimum time the loading spinner stays visible,
	// regardless of actual fetch latency. Cosmetic, not a retry policy.
	MinLoading string `yaml:"min_loading"`
}

// MinLoadingDuration parses SeedConfig.MinLoading, falling back to the
// default when unset or unparsable.
func (s SeedConfig) MinLoadingDuration() time.Duration {
	d, err := time.ParseDuration(s.MinLoading)
	if err != nil || d < 0 {
		return 2 * time.Second
	}
	return d
}

// Default returns the default configuration.
func Default() *Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".pagepal")
	}
	return &Config{
		DataDir: dataDir,
		Backend: "json",
		Theme:   "classic",
		Seed: SeedConfig{
			BooksURL:   "https://openlibrary.org/subjects/science_fiction.json?limit=10",
			MoviesURL:  "https://reactnative.dev/movies.json",
			Limit:      10,
			MinLoading: "2s",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagepal.yaml"
	}
	return filepath.Join(home, ".pagepal", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields
// the defaults. Environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

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

// Save writes the configuration to a YAML file, creating the directory
// if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PAGEPAL_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("PAGEPAL_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("PAGEPAL_THEME"); v != "" {
		c.Theme = v
	}
}
