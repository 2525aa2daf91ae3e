package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	ApplySchema    bool   `toml:"apply_schema"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// http
	CorsAllowedOrigins     []string `toml:"cors_allowed_origins"`
	RateLimitAllowedPerMin int      `toml:"rate_limit_allowed_per_min"`
	JWTIssuer              string   `toml:"jwt_issuer"`
	MCPHttpEnabled         bool     `toml:"mcp_http_enabled"`

	// progress
	ProgressCacheSizeMB     int `toml:"progress_cache_size_mb"`
	ProgressCacheTTLSeconds int `toml:"progress_cache_ttl_seconds"`
	ProgressFanOutLimit     int `toml:"progress_fan_out_limit"`

	// kafka outbox
	OutboxEnabled      bool     `toml:"outbox_enabled"`
	KafkaBrokers       []string `toml:"kafka_brokers"`
	OutboxPollInterval Duration `toml:"outbox_poll_interval"`
	OutboxBatchSize    int      `toml:"outbox_batch_size"`
}

// Duration lets TOML values like "2s" decode into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RateLimitAllowedPerMin <= 0 {
		c.RateLimitAllowedPerMin = 120
	}
	if c.ProgressCacheSizeMB <= 0 {
		c.ProgressCacheSizeMB = 16
	}
	if c.ProgressCacheTTLSeconds <= 0 {
		c.ProgressCacheTTLSeconds = 60
	}
	if c.ProgressFanOutLimit <= 0 {
		c.ProgressFanOutLimit = 4
	}
	if c.OutboxPollInterval.Duration <= 0 {
		c.OutboxPollInterval.Duration = 2 * time.Second
	}
	if c.OutboxBatchSize <= 0 {
		c.OutboxBatchSize = 50
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
}

// Secrets are never kept in the config file.
type Secrets struct {
	JWTSecret        string `env:"KLUSKA_JWT_SECRET"`
	RedisPassword    string `env:"KLUSKA_REDIS_PASS"`
	PostgresPassword string `env:"KLUSKA_POSTGRES_PASS"`
	SentryDSN        string `env:"SENTRY_DSN"`
	MCPSecretHash    string `env:"KLUSKA_MCP_SECRET_HASH"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
