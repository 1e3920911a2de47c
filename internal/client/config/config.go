// Package config loads runtime settings for the contestdesk CLI.
// Sources are layered: defaults, then a .env file (if present), then
// environment variables, then a JSON file (-c/-config), then flags.
// Later sources win.
package config

import "time"

// Config holds runtime settings for the client.
type Config struct {
	// APIBaseURL is the root of the backend REST service.
	APIBaseURL string
	// APITimeout bounds every request issued by the HTTP client.
	APITimeout time.Duration
	// RefreshInterval is the real-time statistics poll period.
	RefreshInterval time.Duration
	// PrefsPath is the local preference database file.
	PrefsPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.APITimeout = 10 * time.Second
	c.RefreshInterval = 30 * time.Second
	c.PrefsPath = "contestdesk.db"
}

// LoadConfig constructs a Config from all sources in precedence order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
