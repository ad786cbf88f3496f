package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gateguard/internal/flagx"
	"github.com/dmitrijs2005/gateguard/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration so
// both "12h" and integer nanoseconds parse; pointer fields keep absent keys
// from clearing earlier values.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	AdminUsername               *string         `json:"admin_username"`
	AdminPassword               *string         `json:"admin_password"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Without either flag nothing is loaded. Unreadable
// files and invalid JSON panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.AdminUsername != nil {
		config.AdminUsername = *c.AdminUsername
	}
	if c.AdminPassword != nil {
		config.AdminPassword = *c.AdminPassword
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
