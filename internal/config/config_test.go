package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CONFIG_FILE", "BOT_TOKEN", "POLL_TIMEOUT", "OWM_API_KEY", "OWM_BASE_URL", "OWM_TIMEOUT",
	"OWM_RPS", "OWM_BURST", "CACHE_TTL", "CACHE_PURGE_INTERVAL", "REDIS_URL", "DATABASE_URL",
	"LOCAL_DB_PATH", "WORKERS", "QUEUE_SIZE", "UPDATE_TIMEOUT", "HTTP_ADDR", "LOG_LEVEL",
	"STATS_INTERVAL",
}

// clearEnv unsets every config key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("OWM_API_KEY", "test_key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_key", cfg.OWMAPIKey)
	assert.Equal(t, "db/data", cfg.LocalDBPath)
	assert.Equal(t, 10*time.Second, cfg.OWMTimeout)
	assert.Equal(t, 5.0, cfg.OWMRPS)
	assert.Equal(t, 5, cfg.OWMBurst)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.CachePurgeInterval)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 64, cfg.QueueSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.StatsInterval)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, BackendFile, cfg.Backend())
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{
			name:    "missing bot token",
			env:     map[string]string{"OWM_API_KEY": "key"},
			missing: "BotToken",
		},
		{
			name:    "missing api key",
			env:     map[string]string{"BOT_TOKEN": "token"},
			missing: "OWMAPIKey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad duration", key: "OWM_TIMEOUT", value: "soon"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
		{name: "negative workers", key: "WORKERS", value: "-1"},
		{name: "bad redis url", key: "REDIS_URL", value: "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "token")
			t.Setenv("OWM_API_KEY", "key")
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
bot_token: yaml_token
owm_api_key: yaml_key
owm_timeout: 3s
workers: 2
database_url: postgres://weathercat@localhost/weathercat?sslmode=disable
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("WORKERS", "16")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "yaml_token", cfg.BotToken)
	assert.Equal(t, "yaml_key", cfg.OWMAPIKey)
	assert.Equal(t, 3*time.Second, cfg.OWMTimeout)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, BackendPostgres, cfg.Backend())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

func TestConfig_Backend(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{name: "nothing set", cfg: Config{}, expected: BackendFile},
		{name: "database", cfg: Config{DatabaseURL: "postgres://x"}, expected: BackendPostgres},
		{name: "redis", cfg: Config{RedisURL: "redis://x"}, expected: BackendRedis},
		{name: "redis wins", cfg: Config{RedisURL: "redis://x", DatabaseURL: "postgres://x"}, expected: BackendRedis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.Backend())
		})
	}
}
