// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Build   BuildConfig   `yaml:"build"`
	Preview PreviewConfig `yaml:"preview"`
	Watch   WatchConfig   `yaml:"watch"`
}

// SiteConfig carries the site-wide presentation fields threaded into layouts.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// BuildConfig controls the build pipeline.
type BuildConfig struct {
	Source       string `yaml:"source"`                   // posts directory
	Output       string `yaml:"output"`                   // rendered site directory
	Strict       bool   `yaml:"strict,omitempty"`         // unknown layouts become errors
	Incremental  bool   `yaml:"incremental,omitempty"`    // skip unchanged posts via the cache
	CacheFile    string `yaml:"cache_file,omitempty"`     // sqlite build cache path
	Repo         string `yaml:"repo,omitempty"`           // optional git URL to build from
	Branch       string `yaml:"branch,omitempty"`         // branch when building from git
	RepoPostsDir string `yaml:"repo_posts_dir,omitempty"` // posts dir inside the cloned repo
	WorkspaceDir string `yaml:"workspace_dir,omitempty"`  // persistent checkout dir for incremental git builds
}

// PreviewConfig controls the preview server.
type PreviewConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Metrics bool   `yaml:"metrics,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceSeconds        int `yaml:"debounce_seconds,omitempty"`
	RebuildIntervalMinutes int `yaml:"rebuild_interval_minutes,omitempty"` // 0 disables periodic rebuilds
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified file. A missing file is an error.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads the config file when present and falls back to defaults
// when it is absent, so simple `--src`/`--out` builds need no config at all.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFile()
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(configPath)
}

func (c *Config) applyDefaults() {
	if c.Build.Source == "" {
		c.Build.Source = "./posts"
	}
	if c.Build.Output == "" {
		c.Build.Output = "./site"
	}
	if c.Build.CacheFile == "" {
		c.Build.CacheFile = ".blogbuilder-cache.db"
	}
	if c.Build.RepoPostsDir == "" {
		c.Build.RepoPostsDir = "_posts"
	}
	if c.Build.WorkspaceDir == "" {
		c.Build.WorkspaceDir = ".blogbuilder-workspace"
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = ":8080"
	}
	if c.Watch.DebounceSeconds <= 0 {
		c.Watch.DebounceSeconds = 2
	}
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
}

// Validate checks invariants that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Watch.RebuildIntervalMinutes < 0 {
		return fmt.Errorf("watch.rebuild_interval_minutes must not be negative, got %d", c.Watch.RebuildIntervalMinutes)
	}
	return nil
}

func loadEnvFile() {
	// .env is optional; builds run fine without one.
	_ = godotenv.Load()
}
