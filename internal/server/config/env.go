package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the server reads.
const EnvPrefix = "GATEGUARD_"

// parseEnv overlays Config with GATEGUARD_* variables. A .env file in the
// working directory is loaded first if present; variables already set in the
// process environment win over it. Malformed durations are ignored.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setString(&cfg.EndpointAddrGRPC, "ENDPOINT_ADDR_GRPC")
	setString(&cfg.DatabaseDSN, "DATABASE_DSN")
	setString(&cfg.SecretKey, "SECRET_KEY")
	setString(&cfg.AdminUsername, "ADMIN_USERNAME")
	setString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v, ok := os.LookupEnv(EnvPrefix + "ACCESS_TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenValidityDuration = d
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}
