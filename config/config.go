// Package config holds runtime settings for the quotes core. The core is a
// library embedded in a mobile shell, so configuration comes from defaults
// overlaid with an optional JSON file supplied by the host app; there are no
// command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dchitadze/fathersquotes/timex"
)

// Config holds runtime settings for the core.
//
// Fields:
//   - RemoteBaseURL: base URL of the hosted table API.
//   - RemoteAPIKey: publishable API key sent with every request.
//   - DatabasePath: SQLite file path (":memory:" for tests).
//   - AssetDir: directory for downloaded author images.
//   - Platform / AppVersion: reported with feedback submissions.
//   - HTTPTimeout: per-request timeout for remote calls.
type Config struct {
	RemoteBaseURL string
	RemoteAPIKey  string
	DatabasePath  string
	AssetDir      string
	Platform      string
	AppVersion    string
	HTTPTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "quotes.db"
	c.AssetDir = "assets"
	c.Platform = "unknown"
	c.AppVersion = "dev"
	c.HTTPTimeout = 15 * time.Second
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type jsonConfig struct {
	RemoteBaseURL string         `json:"remote_base_url"`
	RemoteAPIKey  string         `json:"remote_api_key"`
	DatabasePath  string         `json:"database_path"`
	AssetDir      string         `json:"asset_dir"`
	Platform      string         `json:"platform"`
	AppVersion    string         `json:"app_version"`
	HTTPTimeout   timex.Duration `json:"http_timeout"`
}

// Load constructs a Config from defaults overlaid with values from the JSON
// file at path. An empty path skips the overlay. Later sources take
// precedence over earlier ones; zero-valued JSON fields leave the default in
// place.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.RemoteAPIKey != "" {
		cfg.RemoteAPIKey = jc.RemoteAPIKey
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.AssetDir != "" {
		cfg.AssetDir = jc.AssetDir
	}
	if jc.Platform != "" {
		cfg.Platform = jc.Platform
	}
	if jc.AppVersion != "" {
		cfg.AppVersion = jc.AppVersion
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}

	return cfg, nil
}
