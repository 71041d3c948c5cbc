// Package config loads the YAML configuration shared by the serve and play
// commands.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Zero values are replaced by defaults.
type Config struct {
	Listen     string `yaml:"listen"`
	ResultsDir string `yaml:"results_dir"`
	AssetsDir  string `yaml:"assets_dir"`
	LogLevel   string `yaml:"log_level"`
	// Seed makes runs reproducible: the n-th session started is seeded with
	// Seed+n. Zero draws a fresh seed per session.
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks values a typo could silently break.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level %q: want debug|info|warn|error", c.LogLevel)
	}
	if strings.TrimSpace(c.ResultsDir) == "" {
		return fmt.Errorf("config: results_dir is empty")
	}
	return nil
}

// Load reads a YAML config file and fills in defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
