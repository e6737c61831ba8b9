package config

import "time"

// Config holds runtime settings for the court client CLI.
//
// Fields:
//   - BaseURL: base URL of the backend, with trailing slash.
//   - AppVersion: version string reported to the server on login.
//   - CompatibleServerVersion: server protocol version this build understands;
//     compared against the server's MinCompatibleServerVersion on startup.
//   - DatabasePath: path of the on-device preferences database.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	BaseURL                 string
	AppVersion              string
	CompatibleServerVersion float64
	DatabasePath            string
	RequestTimeout          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/"
	c.AppVersion = "1.0.0"
	c.CompatibleServerVersion = 1
	c.DatabasePath = "courtclient.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
