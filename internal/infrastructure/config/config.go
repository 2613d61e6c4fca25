package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server" toml:"server"`
	Storage     StorageConfig     `yaml:"storage" toml:"storage"`
	Logging     LogConfig         `yaml:"logging" toml:"logging"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" toml:"rate_limit"`
	CORS        CORSConfig        `yaml:"cors" toml:"cors"`
	Metrics     MetricsConfig     `yaml:"metrics" toml:"metrics"`
	Compression CompressionConfig `yaml:"compression" toml:"compression"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"3000" yaml:"port" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
	// Timeouts in seconds
	ReadHeaderTimeout int `envconfig:"READ_HEADER_TIMEOUT" default:"10" yaml:"read_header_timeout" toml:"read_header_timeout"`
	ShutdownTimeout   int `envconfig:"SHUTDOWN_TIMEOUT" default:"10" yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// ReadHeaderTimeoutDuration returns ReadHeaderTimeout as a duration
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return time.Duration(s.ReadHeaderTimeout) * time.Second
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a duration
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// StorageConfig holds the confined storage directory.
type StorageConfig struct {
	Root string `envconfig:"STORAGE_ROOT" default:"./file_storage" yaml:"root" toml:"root"`
	// AllowNested accepts names below subdirectories of Root.
	AllowNested bool `envconfig:"STORAGE_ALLOW_NESTED" default:"false" yaml:"allow_nested" toml:"allow_nested"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// Rate limit scopes
const (
	// RateLimitScopeIP gives every client IP its own bucket
	RateLimitScopeIP = "ip"
	// RateLimitScopeGlobal shares one bucket across all clients
	RateLimitScopeGlobal = "global"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int    `envconfig:"RATE_LIMIT_RPS" default:"50" yaml:"rps" toml:"rps"`
	Burst             int    `envconfig:"RATE_LIMIT_BURST" default:"100" yaml:"burst" toml:"burst"`
	Enabled           bool   `envconfig:"RATE_LIMIT_ENABLED" default:"false" yaml:"enabled" toml:"enabled"`
	Scope             string `envconfig:"RATE_LIMIT_SCOPE" default:"ip" yaml:"scope" toml:"scope"`
}

// CORSConfig toggles cross-origin headers.
type CORSConfig struct {
	Enabled bool `envconfig:"CORS_ENABLED" default:"false" yaml:"enabled" toml:"enabled"`
}

// MetricsConfig holds the metrics listener configuration.
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090" yaml:"addr" toml:"addr"`
}

// CompressionConfig toggles gzip response compression.
type CompressionConfig struct {
	Enabled bool `envconfig:"COMPRESSION_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads configuration from the environment and then applies the
// YAML or TOML file at path on top. Keys absent from the file keep their
// environment or default value.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              "3000",
			Host:              "0.0.0.0",
			ReadHeaderTimeout: 10,
			ShutdownTimeout:   10,
		},
		Storage: StorageConfig{
			Root:        "./file_storage",
			AllowNested: false,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           false,
			Scope:             RateLimitScopeIP,
		},
		CORS: CORSConfig{
			Enabled: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9090",
		},
		Compression: CompressionConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}
	if c.Storage.Root == "" {
		return fmt.Errorf("storage root cannot be empty")
	}
	if c.Server.ReadHeaderTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit rps and burst must be positive")
		}
		switch c.RateLimit.Scope {
		case RateLimitScopeIP, RateLimitScopeGlobal:
		default:
			return fmt.Errorf("invalid rate limit scope %q", c.RateLimit.Scope)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics address cannot be empty")
	}
	return nil
}
