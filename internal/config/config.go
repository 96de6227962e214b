// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	Mock       MockConfig       `mapstructure:"mock"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Debug bool   `mapstructure:"debug"`
}

// CatalogConfig holds the remote movie API settings.
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	CB      CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// StorefrontConfig holds terminal client settings.
type StorefrontConfig struct {
	StartLocation       string `mapstructure:"start_location"`
	SuggestionCacheSize int    `mapstructure:"suggestion_cache_size"`
}

// MockConfig holds the development catalog server settings.
type MockConfig struct {
	Addr              string        `mapstructure:"addr"`
	BodyLimit         int           `mapstructure:"body_limit"`
	SessionExpiration time.Duration `mapstructure:"session_expiration"`
	Redis             RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the optional Redis session store of the catalog server.
// An empty Host keeps sessions in memory.
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "movie-storefront")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", false)

	// Catalog API defaults
	v.SetDefault("catalog.base_url", "http://localhost:8090")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.retry.max_attempts", 2)
	v.SetDefault("catalog.retry.wait_time", "200ms")
	v.SetDefault("catalog.retry.max_wait_time", "2s")
	v.SetDefault("catalog.circuit_breaker.max_requests", 3)
	v.SetDefault("catalog.circuit_breaker.interval", "60s")
	v.SetDefault("catalog.circuit_breaker.timeout", "15s")
	v.SetDefault("catalog.circuit_breaker.failure_ratio", 0.5)

	// Storefront defaults
	v.SetDefault("storefront.start_location", "movies")
	v.SetDefault("storefront.suggestion_cache_size", 0)

	// Mock catalog defaults
	v.SetDefault("mock.addr", ":8090")
	v.SetDefault("mock.body_limit", 1024*1024)
	v.SetDefault("mock.session_expiration", "30m")
	v.SetDefault("mock.redis.host", "")
	v.SetDefault("mock.redis.port", 6379)
	v.SetDefault("mock.redis.password", "")
	v.SetDefault("mock.redis.db", 0)
	v.SetDefault("mock.redis.key_prefix", "catalog-session")

	// Logger defaults. The terminal belongs to the UI, so logs go to a file.
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "storefront.log")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)
}
