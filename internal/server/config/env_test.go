package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv(EnvPrefix+"ENDPOINT_ADDR_GRPC", ":6000")
	t.Setenv(EnvPrefix+"DATABASE_DSN", "postgres://env")
	t.Setenv(EnvPrefix+"SECRET_KEY", "env-secret")
	t.Setenv(EnvPrefix+"ACCESS_TOKEN_VALIDITY_DURATION", "90m")
	t.Setenv(EnvPrefix+"ADMIN_USERNAME", "root")
	t.Setenv(EnvPrefix+"ADMIN_PASSWORD", "pw")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, Config{
		EndpointAddrGRPC:            ":6000",
		DatabaseDSN:                 "postgres://env",
		SecretKey:                   "env-secret",
		AccessTokenValidityDuration: 90 * time.Minute,
		AdminUsername:               "root",
		AdminPassword:               "pw",
		LogLevel:                    "warn",
	}, c)
}

func TestParseEnv_BadDurationIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvPrefix+"ACCESS_TOKEN_VALIDITY_DURATION", "soon")

	c := Config{AccessTokenValidityDuration: time.Hour}
	parseEnv(&c)

	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := EnvPrefix + "ADMIN_USERNAME=dotenv-admin\n" + EnvPrefix + "SECRET_KEY=dotenv-secret\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	// registered with t.Setenv so the values godotenv writes are undone
	for _, k := range []string{"ADMIN_USERNAME", "SECRET_KEY"} {
		t.Setenv(EnvPrefix+k, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+k))
	}
	t.Setenv(EnvPrefix+"SECRET_KEY", "process-secret")

	var c Config
	parseEnv(&c)

	assert.Equal(t, "dotenv-admin", c.AdminUsername)
	assert.Equal(t, "process-secret", c.SecretKey, "process environment wins over .env")
}
