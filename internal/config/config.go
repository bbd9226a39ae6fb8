// Package config loads the planify configuration from an optional YAML file
// with PLANIFY_* environment overrides. A missing config file is not an
// error: every setting has a usable default.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable settings for the planify binaries.
type Config struct {
	// DataDir is the base directory for local state. Relative backend
	// paths are resolved against and contained within it.
	DataDir string `yaml:"data_dir"`

	Feed    FeedConfig    `yaml:"feed"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Logging LoggingConfig `yaml:"logging"`
}

// FeedConfig configures the one-shot remote update-feed fetch.
type FeedConfig struct {
	// URL of the read-only update feed. Empty disables the fetch.
	URL string `yaml:"url"`
}

// SweepConfig configures the recurring-task sweep.
type SweepConfig struct {
	// Interval between sweep runs. Defaults to 24h; the sweep is
	// best-effort and does not backfill missed runs.
	Interval time.Duration `yaml:"interval"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Development bool `yaml:"development"`
}

// defaultDataDir returns ~/.planify, falling back to ./.planify when the
// home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planify"
	}
	return home + string(os.PathSeparator) + ".planify"
}

// Load reads the config file at path (when non-empty and present), then
// applies environment overrides and defaults. A missing file yields the
// defaults; a malformed file is an error so a typo is not silently ignored.
//
// Environment overrides:
//   - PLANIFY_DATA_DIR
//   - PLANIFY_FEED_URL
//   - PLANIFY_SWEEP_INTERVAL (Go duration, e.g. "24h")
//   - PLANIFY_LOG_DEV ("true" enables development logging)
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("PLANIFY_DATA_DIR")); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANIFY_FEED_URL")); v != "" {
		cfg.Feed.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANIFY_SWEEP_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PLANIFY_SWEEP_INTERVAL: %w", err)
		}
		cfg.Sweep.Interval = d
	}
	if v := strings.TrimSpace(os.Getenv("PLANIFY_LOG_DEV")); v != "" {
		cfg.Logging.Development = strings.EqualFold(v, "true")
	}

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.Sweep.Interval <= 0 {
		cfg.Sweep.Interval = 24 * time.Hour
	}

	return cfg, nil
}
