package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gateguard/internal/flagx"
	"github.com/dmitrijs2005/gateguard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key apart from a zero value.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ProbeTimeout        *timex.Duration `json:"probe_timeout"`
	DatabasePath        *string         `json:"database_path"`
	LookupCacheSize     *int            `json:"lookup_cache_size"`
	LookupCacheTTL      *timex.Duration `json:"lookup_cache_ttl"`
	MetricsAddr         *string         `json:"metrics_addr"`
	LogLevel            *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. It does nothing when neither flag is given and panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.ProbeTimeout != nil {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LookupCacheSize != nil {
		cfg.LookupCacheSize = *jc.LookupCacheSize
	}
	if jc.LookupCacheTTL != nil {
		cfg.LookupCacheTTL = jc.LookupCacheTTL.Duration
	}
	if jc.MetricsAddr != nil {
		cfg.MetricsAddr = *jc.MetricsAddr
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
