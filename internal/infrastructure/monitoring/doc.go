/*
Package monitoring provides Prometheus metrics for the file server.

# Overview

Each Metrics value owns its own registry, so several servers (or tests) can
live in one process without duplicate registration panics.

# Features

- HTTP request metrics (count, latency, response size) labelled by route
- Filesystem operation metrics (count by outcome, latency)
- Rejected path counter
- Go runtime and process collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics, "read")
	// ... perform operation ...
	timer.Stop("ok")

	mux.Handle("/metrics", metrics.Handler())
*/
package monitoring
