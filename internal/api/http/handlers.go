package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filekeeper/internal/providers/filesystem"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

// Files is the set of filesystem operations the handlers depend on
type Files interface {
	List(ctx context.Context, dir paths.Resolved, opts filesystem.ListOptions) ([]filesystem.Entry, error)
	Create(ctx context.Context, p paths.Resolved, content []byte) error
	Read(ctx context.Context, p paths.Resolved) ([]byte, error)
	Delete(ctx context.Context, p paths.Resolved) error
}

// Handlers contains all HTTP handlers
type Handlers struct {
	resolver *paths.Resolver
	files    Files
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set. logger and metrics may be nil.
func NewHandlers(resolver *paths.Resolver, files Files, logger *zap.Logger, metrics *monitoring.Metrics) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		resolver: resolver,
		files:    files,
		logger:   logger,
		metrics:  metrics,
	}
}

// NewRouter builds the gin engine for the file surface. Middleware runs in the
// order given, after panic recovery.
func NewRouter(h *Handlers, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()

	// Only exact paths are served; "/read/" is not "/read"
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.HandleMethodNotAllowed = false

	router.SetHTMLTemplate(listingTemplate)

	router.Use(gin.CustomRecoveryWithWriter(io.Discard, h.Recover))
	router.Use(middleware...)

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes attaches the file routes and the 404 fallbacks
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/", h.List)
	router.GET("/list", h.List)
	router.GET("/create", h.Create)
	router.GET("/read", h.Read)
	router.GET("/delete", h.Delete)

	router.NoRoute(h.NotFound)
	router.NoMethod(h.NotFound)
}

// NotFound answers every unknown path or method
func (h *Handlers) NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, msgNotFound)
}

// Recover turns a panic into a 500 response
func (h *Handlers) Recover(c *gin.Context, recovered any) {
	h.logger.Error("panic while handling request",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
	)
	c.String(http.StatusInternalServerError, "Server Error: %v", recovered)
	c.Abort()
}
