// Package config handles YAML configuration loading with environment variable
// expansion, plus database bootstrapping.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/vambrace/vambrace/internal/viewcache"
)

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Views     ViewsConfig     `yaml:"views"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Pages     []PageEntry     `yaml:"pages"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // file path or ":memory:"
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Backend string        `yaml:"backend"` // "memory" (default) or "redis"
	MaxSize int           `yaml:"max_size"`
	TTL     time.Duration `yaml:"ttl"` // backend default TTL
	Redis   RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis backend settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ViewsConfig holds per-view behavior defaults.
type ViewsConfig struct {
	Headline      string                `yaml:"headline"`
	StaticContext string                `yaml:"static_context"` // JSON object
	CacheTimeout  viewcache.TimeoutSpec `yaml:"cache_timeout"`  // seconds or "<n>[dhm]"
}

// TelemetryConfig holds observability settings.
type TelemetryConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TracingConfig controls OpenTelemetry tracing.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`    // OTLP gRPC endpoint
	SampleRate float64 `yaml:"sample_rate"` // 0.0 to 1.0
}

// PageEntry is a page seed in the config file.
type PageEntry struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnv replaces ${VAR} patterns with environment variable values.
func expandEnv(data []byte) []byte {
	return envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := string(match[2 : len(match)-1])
		if val, ok := os.LookupEnv(varName); ok {
			return []byte(val)
		}
		return match
	})
}

// Load reads and parses a YAML config file, expanding environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	data = expandEnv(data)

	cfg := &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			DSN: "vambrace.db",
		},
		Cache: CacheConfig{
			Backend: "memory",
			MaxSize: 10_000,
			TTL:     10 * time.Minute,
		},
		Views: ViewsConfig{
			CacheTimeout: viewcache.DefaultTimeout,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
