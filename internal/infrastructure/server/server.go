package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apihttp "github.com/GriffinCanCode/filekeeper/internal/api/http"
	"github.com/GriffinCanCode/filekeeper/internal/api/middleware"
	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/config"
	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/logging"
	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/filekeeper/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/filekeeper/internal/providers/filesystem"
	"github.com/GriffinCanCode/filekeeper/internal/shared/paths"
)

// Server wraps the HTTP listeners and their dependencies
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	resolver *paths.Resolver
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer

	handler http.Handler
	admin   http.Handler

	httpServer  *http.Server
	adminServer *http.Server
}

// New creates a server from cfg. The storage root is created if missing;
// failing to create it is the only fatal startup error.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing file server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("storage_root", cfg.Storage.Root),
		zap.Bool("allow_nested", cfg.Storage.AllowNested),
	)

	resolver, err := paths.NewResolver(cfg.Storage.Root, paths.WithNested(cfg.Storage.AllowNested))
	if err != nil {
		return nil, err
	}
	if err := resolver.EnsureRoot(); err != nil {
		return nil, err
	}
	logger.Info("Storage root ready", zap.String("path", resolver.Root().String()))

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("filekeeper", logger.Named("http").Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	chain := []gin.HandlerFunc{
		tracing.HTTPMiddleware(tracer),
		monitoring.Middleware(metrics),
	}
	if cfg.CORS.Enabled {
		logger.Info("CORS enabled")
		chain = append(chain, middleware.CORS(middleware.DefaultCORSConfig()))
	}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.String("scope", cfg.RateLimit.Scope),
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		chain = append(chain, rateLimiter(cfg.RateLimit))
	}

	ops := filesystem.NewOps(logger.Named("filesystem").Logger, metrics)
	handlers := apihttp.NewHandlers(resolver, ops, logger.Named("api").Logger, metrics)
	router := apihttp.NewRouter(handlers, chain...)

	var handler http.Handler = router
	if cfg.Compression.Enabled {
		handler = gzhttp.GzipHandler(router)
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		resolver: resolver,
		metrics:  metrics,
		tracer:   tracer,
		handler:  handler,
		admin:    newAdminRouter(metrics),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeoutDuration(),
	}
	if cfg.Metrics.Enabled {
		s.adminServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           s.admin,
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeoutDuration(),
		}
	}

	logger.Info("Server initialized successfully")
	return s, nil
}

// rateLimiter picks the per-IP or shared limiter for cfg.Scope
func rateLimiter(cfg config.RateLimitConfig) gin.HandlerFunc {
	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = cfg.RequestsPerSecond
	rl.Burst = cfg.Burst

	if cfg.Scope == config.RateLimitScopeGlobal {
		return middleware.GlobalRateLimit(rl)
	}
	return middleware.RateLimit(rl)
}

// newAdminRouter serves /metrics and /health. It runs on its own listener
// so the file surface keeps answering 404 for every other path.
func newAdminRouter(metrics *monitoring.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"metrics": metrics.Snapshot(),
		})
	})
	return router
}

// Handler returns the file surface handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// AdminHandler returns the metrics and health handler
func (s *Server) AdminHandler() http.Handler {
	return s.admin
}

// Resolver returns the storage root resolver
func (s *Server) Resolver() *paths.Resolver {
	return s.resolver
}

// Run listens on the configured addresses and serves until Shutdown.
// A clean shutdown returns nil.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	var adminLn net.Listener
	if s.adminServer != nil {
		adminLn, err = net.Listen("tcp", s.adminServer.Addr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to listen on %s: %w", s.adminServer.Addr, err)
		}
	}

	return s.Serve(ln, adminLn)
}

// Serve serves the file surface on ln and, when adminLn is non-nil, the
// metrics surface on adminLn. If either listener fails the other is closed
// and the first error is returned.
func (s *Server) Serve(ln, adminLn net.Listener) error {
	g, ctx := errgroup.WithContext(context.Background())

	s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
	g.Go(func() error {
		if err := ignoreClosed(s.httpServer.Serve(ln)); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if adminLn != nil && s.adminServer != nil {
		s.logger.Info("Starting metrics server", zap.String("addr", adminLn.Addr().String()))
		g.Go(func() error {
			if err := ignoreClosed(s.adminServer.Serve(adminLn)); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			// Wait also cancels ctx on a clean return, with cause Canceled
			cause := context.Cause(ctx)
			if errors.Is(cause, context.Canceled) {
				return
			}
			s.logger.Error("Listener failed, stopping server", zap.Error(cause))
			s.closeServers()
		case <-done:
		}
	}()

	err := g.Wait()
	close(done)
	return err
}

// closeServers closes both listeners without waiting for in-flight requests
func (s *Server) closeServers() {
	_ = s.httpServer.Close()
	if s.adminServer != nil {
		_ = s.adminServer.Close()
	}
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires. Pending spans are flushed afterwards.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}

	s.tracer.Close()
	s.logger.Sync()

	return errors.Join(errs...)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
