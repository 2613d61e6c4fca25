// Package http maps HTTP requests onto file operations.
//
// Every route is a GET with query parameters:
//   - / and /list: HTML listing of the storage root, optional match glob
//   - /create?file=&content=: write a file, 302 to /
//   - /read?file=: file content as text/plain
//   - /delete?file=: remove a file, 302 to /
//
// Anything else is 404 "Not Found.".
//
// The file parameter always goes through paths.Resolver before the
// filesystem is touched. Failures map onto one status each:
//
//	missing parameter  400
//	path rejected      403
//	not found          404
//	is a directory     400
//	anything else      500 with the error text
//
// Example Usage:
//
//	handlers := http.NewHandlers(resolver, ops, logger, metrics)
//	router := http.NewRouter(handlers, tracing.HTTPMiddleware(tracer))
package http
