// Package main is the entry point for the filekeeper server.
//
// filekeeper serves a single storage directory over HTTP. Every route is a
// GET; see package internal/api/http for the surface.
//
// Configuration:
//   - Environment variables (PORT, STORAGE_ROOT, LOG_LEVEL, ...)
//   - An optional YAML or TOML file (-config), applied over the environment
//   - CLI flags, applied last
//
// Usage:
//
//	# Defaults: port 3000, ./file_storage
//	./server
//
//	# Custom root and port, debug logging
//	./server -root /srv/files -port 8080 -dev
//
//	# From a config file
//	./server -config filekeeper.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
