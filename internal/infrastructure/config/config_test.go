package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "HOST", "READ_HEADER_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"STORAGE_ROOT", "STORAGE_ALLOW_NESTED",
	"LOG_LEVEL", "LOG_DEV",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_ENABLED", "RATE_LIMIT_SCOPE",
	"CORS_ENABLED", "METRICS_ENABLED", "METRICS_ADDR", "COMPRESSION_ENABLED",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if prev, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeoutDuration())

	assert.Equal(t, "./file_storage", cfg.Storage.Root)
	assert.False(t, cfg.Storage.AllowNested)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, RateLimitScopeIP, cfg.RateLimit.Scope)

	assert.False(t, cfg.CORS.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.True(t, cfg.Compression.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	clearEnv(t)

	envVars := map[string]string{
		"PORT":                 "9000",
		"HOST":                 "127.0.0.1",
		"READ_HEADER_TIMEOUT":  "3",
		"STORAGE_ROOT":         "/srv/files",
		"STORAGE_ALLOW_NESTED": "true",
		"LOG_LEVEL":            "debug",
		"LOG_DEV":              "true",
		"RATE_LIMIT_RPS":       "500",
		"RATE_LIMIT_BURST":     "1000",
		"RATE_LIMIT_ENABLED":   "true",
		"CORS_ENABLED":         "true",
		"METRICS_ADDR":         "127.0.0.1:9100",
		"COMPRESSION_ENABLED":  "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadHeaderTimeoutDuration())
	assert.Equal(t, "/srv/files", cfg.Storage.Root)
	assert.True(t, cfg.Storage.AllowNested)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.False(t, cfg.Compression.Enabled)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_RPS", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestRateLimitScopeFromEnvironment(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RateLimitScopeIP, cfg.RateLimit.Scope)
	assert.Equal(t, Default().RateLimit, cfg.RateLimit)

	t.Setenv("RATE_LIMIT_SCOPE", "global")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, RateLimitScopeGlobal, cfg.RateLimit.Scope)
}

func TestStorageConfig(t *testing.T) {
	tests := []struct {
		name       string
		root       string
		nested     string
		wantRoot   string
		wantNested bool
	}{
		{"default values", "", "", "./file_storage", false},
		{"custom root", "/data", "", "/data", false},
		{"nested allowed", "", "true", "./file_storage", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.root != "" {
				t.Setenv("STORAGE_ROOT", tt.root)
			}
			if tt.nested != "" {
				t.Setenv("STORAGE_ALLOW_NESTED", tt.nested)
			}

			cfg, err := Load()
			require.NoError(t, err)

			assert.Equal(t, tt.wantRoot, cfg.Storage.Root)
			assert.Equal(t, tt.wantNested, cfg.Storage.AllowNested)
		})
	}
}

func TestLoadFileYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")

	path := writeFile(t, "filekeeper.yaml", `
server:
  port: "8080"
storage:
  root: /var/lib/filekeeper
  allow_nested: true
logging:
  level: warn
rate_limit:
  enabled: true
  rps: 5
  burst: 10
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	// Absent from the file, so the environment value stays
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "/var/lib/filekeeper", cfg.Storage.Root)
	assert.True(t, cfg.Storage.AllowNested)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileTOML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "filekeeper.toml", `
[server]
port = "4000"
shutdown_timeout = 2

[storage]
root = "/tmp/fk"

[metrics]
enabled = false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeoutDuration())
	assert.Equal(t, "/tmp/fk", cfg.Storage.Root)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "config.json", `{}`))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "bad.toml", "[server\nport ="))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "unknown.toml", "[server]\nbogus = 1\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"non numeric port", func(c *Config) { c.Server.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, true},
		{"empty root", func(c *Config) { c.Storage.Root = "" }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = -1 }, true},
		{"rate limit zero rps", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RequestsPerSecond = 0
		}, true},
		{"rate limit disabled zero rps", func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.RequestsPerSecond = 0
		}, false},
		{"rate limit global scope", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Scope = RateLimitScopeGlobal
		}, false},
		{"rate limit unknown scope", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.Scope = "user"
		}, true},
		{"rate limit disabled unknown scope", func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.Scope = "user"
		}, false},
		{"metrics without addr", func(c *Config) { c.Metrics.Addr = "" }, true},
		{"metrics disabled without addr", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.Addr = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
