// Package server assembles the file server from configuration.
//
// Two listeners are started:
//   - the file surface on Server.Host:Server.Port (gin router, optional gzip)
//   - /metrics and /health on Metrics.Addr when metrics are enabled
//
// Middleware order on the file surface is recovery, tracing, metrics,
// then CORS and rate limiting when configured.
package server
