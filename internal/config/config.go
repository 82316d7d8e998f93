package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Storage backends, see Config.Backend
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken    string        `yaml:"bot_token" envconfig:"BOT_TOKEN" validate:"required"`
	PollTimeout time.Duration `yaml:"poll_timeout" envconfig:"POLL_TIMEOUT" validate:"gt=0"`

	OWMAPIKey  string        `yaml:"owm_api_key" envconfig:"OWM_API_KEY" validate:"required"`
	OWMBaseURL string        `yaml:"owm_base_url" envconfig:"OWM_BASE_URL" validate:"omitempty,url"`
	OWMTimeout time.Duration `yaml:"owm_timeout" envconfig:"OWM_TIMEOUT" validate:"gt=0"`
	OWMRPS     float64       `yaml:"owm_rps" envconfig:"OWM_RPS" validate:"gt=0"`
	OWMBurst   int           `yaml:"owm_burst" envconfig:"OWM_BURST" validate:"gte=1"`

	CacheTTL           time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" validate:"gte=0"`
	CachePurgeInterval time.Duration `yaml:"cache_purge_interval" envconfig:"CACHE_PURGE_INTERVAL" validate:"gt=0"`

	RedisURL    string `yaml:"redis_url" envconfig:"REDIS_URL" validate:"omitempty,url"`
	DatabaseURL string `yaml:"database_url" envconfig:"DATABASE_URL"`
	LocalDBPath string `yaml:"local_db_path" envconfig:"LOCAL_DB_PATH" validate:"required"`

	Workers       int           `yaml:"workers" envconfig:"WORKERS" validate:"gte=1,lte=1024"`
	QueueSize     int           `yaml:"queue_size" envconfig:"QUEUE_SIZE" validate:"gte=1"`
	UpdateTimeout time.Duration `yaml:"update_timeout" envconfig:"UPDATE_TIMEOUT" validate:"gt=0"`

	HTTPAddr      string        `yaml:"http_addr" envconfig:"HTTP_ADDR"`
	LogLevel      string        `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	StatsInterval time.Duration `yaml:"stats_interval" envconfig:"STATS_INTERVAL" validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from .env, an optional YAML file named by
// CONFIG_FILE and environment variables, in that order of precedence
// (environment wins).
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = 10 * time.Second
	}
	if cfg.OWMTimeout == 0 {
		cfg.OWMTimeout = 10 * time.Second
	}
	if cfg.OWMRPS == 0 {
		cfg.OWMRPS = 5
	}
	if cfg.OWMBurst == 0 {
		cfg.OWMBurst = 5
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.CachePurgeInterval == 0 {
		cfg.CachePurgeInterval = 15 * time.Minute
	}
	if cfg.LocalDBPath == "" {
		cfg.LocalDBPath = "db/data"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 8
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 64
	}
	if cfg.UpdateTimeout == 0 {
		cfg.UpdateTimeout = 30 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StatsInterval == 0 {
		cfg.StatsInterval = time.Hour
	}
}

// Backend returns the storage backend to use: redis if REDIS_URL is set,
// postgres if DATABASE_URL is set, the local file otherwise
func (c *Config) Backend() string {
	switch {
	case c.RedisURL != "":
		return BackendRedis
	case c.DatabaseURL != "":
		return BackendPostgres
	default:
		return BackendFile
	}
}
