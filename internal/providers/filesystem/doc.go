// Package filesystem performs the file operations behind the HTTP surface.
//
// This package is organized into:
//   - basic: create, read, delete
//   - directory: listing of immediate children
//   - types: entries and the Kind-tagged Error
//
// All operations:
//   - Accept only paths.Resolved, never raw user input
//   - Are single shot with no caching or retries
//   - Return *Error so callers can switch on KindOf(err)
//
// Example Usage:
//
//	ops := filesystem.NewOps(logger, metrics)
//	data, err := ops.Read(ctx, resolved)
//	switch filesystem.KindOf(err) {
//	case filesystem.KindNotFound:
//	    // 404
//	}
package filesystem
