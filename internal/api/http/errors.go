package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filekeeper/internal/providers/filesystem"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

// Response bodies
const (
	msgMissingFile    = "Bad Request: Missing filename."
	msgForbidden      = "Forbidden: Invalid file path or name."
	msgFileNotFound   = "File not found."
	msgNotFound       = "Not Found."
	msgBadPattern     = "Bad Request: Invalid match pattern."
	msgServerErrorFmt = "Server Error: %s"
)

// errorKind is the request-level failure taxonomy
type errorKind int

const (
	errMissingParameter errorKind = iota
	errPathRejected
	errNotFound
	errIsDirectory
	errIO
)

// status maps a failure onto its HTTP status code
func (k errorKind) status() int {
	switch k {
	case errMissingParameter, errIsDirectory:
		return http.StatusBadRequest
	case errPathRejected:
		return http.StatusForbidden
	case errNotFound:
		return http.StatusNotFound
	case errIO:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// kindOf maps a filesystem or resolver error onto the request taxonomy
func kindOf(err error) errorKind {
	if errors.Is(err, paths.ErrRejected) {
		return errPathRejected
	}

	switch filesystem.KindOf(err) {
	case filesystem.KindNotFound:
		return errNotFound
	case filesystem.KindIsDirectory:
		return errIsDirectory
	case filesystem.KindIO:
		return errIO
	}
	return errIO
}

// fail writes the single plain text response for a failed request.
// verb names the refused action in directory errors ("read", "delete").
func (h *Handlers) fail(c *gin.Context, kind errorKind, verb string, err error) {
	status := kind.status()

	switch kind {
	case errMissingParameter:
		c.String(status, msgMissingFile)
	case errPathRejected:
		if h.metrics != nil {
			h.metrics.IncPathRejections()
		}
		h.logger.Warn("path rejected",
			zap.String("file", c.Query("file")),
			zap.Error(err),
		)
		c.String(status, msgForbidden)
	case errNotFound:
		c.String(status, msgFileNotFound)
	case errIsDirectory:
		c.String(status, "Cannot %s a directory.", verb)
	case errIO:
		h.logger.Error("file operation failed",
			zap.String("op", verb),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.String(status, msgServerErrorFmt, err.Error())
	}
}
