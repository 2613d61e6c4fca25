/*
Package tracing attaches trace and span IDs to every request and logs each
completed request as a span.

# Usage

	tracer := tracing.New("filekeeper", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Inside a handler
	traceID := tracing.GetTraceID(c.Request.Context())

# Trace Format

IDs propagate through standard headers:
- X-Trace-ID: identifier for the whole request flow
- X-Span-ID: identifier for the current operation

Incoming headers are honored, so a proxy can stitch its own trace onto ours.
Completed spans go through a buffered channel (1000 spans) and are logged
asynchronously. Spans beyond the buffer are dropped with a warning.
*/
package tracing
