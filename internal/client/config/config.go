package config

import "time"

// Config holds runtime settings for the gate device client.
//
// Durations are time.Duration values. An OnlineCheckInterval of zero turns
// probing off and the device works from its cache only.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	ProbeTimeout        time.Duration
	DatabasePath        string
	LookupCacheSize     int
	LookupCacheTTL      time.Duration
	MetricsAddr         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = 3 * time.Second
	c.DatabasePath = "gateguard.db"
	c.LookupCacheSize = 256
	c.LookupCacheTTL = time.Minute
	c.MetricsAddr = ""
	c.LogLevel = "info"
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
