// Package config handles loading and validating the reporter configuration.
//
// Values come from three layers, later ones winning: built-in defaults,
// the TOML config file (~/.config/gmail-analysis/config.toml by default),
// and command-line flags applied by the caller. OAuth client credentials
// may also come from GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET, typically
// loaded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Report sink kinds.
const (
	SinkConsole = "console"
	SinkSheets  = "sheets"
)

// GoogleConfig holds the OAuth client credentials.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Config is the full configuration surface of one report run.
type Config struct {
	Account       string `toml:"account"`         // Google account name (token cache key)
	Query         string `toml:"query"`           // Gmail search query
	PageSize      int    `toml:"page_size"`       // threads per page, > 0
	MaxThreads    int    `toml:"max_threads"`     // processed-thread cap per run, > 0
	PacingDelayMs int    `toml:"pacing_delay_ms"` // fixed sleep between page fetches, >= 0
	Sink          string `toml:"sink"`            // "console" or "sheets"
	SpreadsheetID string `toml:"spreadsheet_id"`  // required for the sheets sink
	LogLevel      string `toml:"log_level"`       // debug, info, warn, error
	LogFormat     string `toml:"log_format"`      // text or json

	Google GoogleConfig `toml:"google"`

	// Computed, not from the config file.
	HomeDir string `toml:"-"`
}

// DefaultHome returns the configuration directory, honoring
// GMAIL_ANALYSIS_HOME.
func DefaultHome() string {
	if h := os.Getenv("GMAIL_ANALYSIS_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gmail-analysis"
	}
	return filepath.Join(home, ".config", "gmail-analysis")
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Account:       "default",
		Query:         "in:inbox",
		PageSize:      50,
		MaxThreads:    500,
		PacingDelayMs: 500,
		Sink:          SinkConsole,
		LogLevel:      "info",
		LogFormat:     "text",
		HomeDir:       DefaultHome(),
	}
}

// Load reads the configuration file at path, or the default location when
// path is empty. A missing file is not an error: defaults plus environment
// overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = filepath.Join(cfg.HomeDir, "config.toml")
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		cfg.Google.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		cfg.Google.ClientSecret = v
	}
	return cfg, nil
}

// Validate checks the configuration surface consumed by the engine.
func (c *Config) Validate() error {
	if c.Query == "" {
		return fmt.Errorf("query must not be empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be > 0, got %d", c.PageSize)
	}
	if c.MaxThreads <= 0 {
		return fmt.Errorf("max_threads must be > 0, got %d", c.MaxThreads)
	}
	if c.PacingDelayMs < 0 {
		return fmt.Errorf("pacing_delay_ms must be >= 0, got %d", c.PacingDelayMs)
	}
	switch c.Sink {
	case SinkConsole:
	case SinkSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("spreadsheet_id is required when sink is %q", SinkSheets)
		}
	default:
		return fmt.Errorf("unknown sink %q (want %q or %q)", c.Sink, SinkConsole, SinkSheets)
	}
	return nil
}

// PacingDelay returns the pacing delay as a duration.
func (c *Config) PacingDelay() time.Duration {
	return time.Duration(c.PacingDelayMs) * time.Millisecond
}

// CheckpointPath returns the path of the per-account date checkpoint file.
func (c *Config) CheckpointPath() string {
	return filepath.Join(c.HomeDir, "checkpoint.toml")
}
