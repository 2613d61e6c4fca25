// Package config provides 12-factor configuration management for the file server.
//
// Configuration is loaded from environment variables with defaults. An
// optional YAML or TOML file is applied on top, and CLI flags override both.
//
// Configuration Sections:
//   - Server: HTTP listener settings (port, host, timeouts)
//   - Storage: Storage root and nested-name policy
//   - Logging: Log level and output format
//   - RateLimit: Per-IP or global rate limiting configuration
//   - CORS: Cross-origin headers
//   - Metrics: Prometheus listener
//   - Compression: gzip responses
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Serving %s on %s\n", cfg.Storage.Root, cfg.Server.Addr())
//
// Environment Variables:
//   - PORT, HOST, READ_HEADER_TIMEOUT, SHUTDOWN_TIMEOUT
//   - STORAGE_ROOT, STORAGE_ALLOW_NESTED
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_ENABLED, RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_SCOPE
//   - CORS_ENABLED, METRICS_ENABLED, METRICS_ADDR, COMPRESSION_ENABLED
package config
