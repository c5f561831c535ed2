// Package http assembles synthgen's gin engine: middleware stack,
// route table, and the graceful listen/shutdown lifecycle cmd/synthgen
// drives.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"synthgen/internal/config"
	"synthgen/internal/transport/http/handlers"
	"synthgen/internal/transport/http/middleware"
)

// Server wraps a gin engine and the stdlib http.Server that serves it.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	handlers *handlers.Handlers
	engine   *gin.Engine
	server   *http.Server
}

// NewServer builds a Server from its config and handler set.
func NewServer(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) *Server {
	return &Server{config: cfg, logger: logger, handlers: h}
}

// Start builds the route table and blocks serving HTTP until Shutdown
// closes the listener, returning nil on a clean shutdown.
func (s *Server) Start() error {
	if s.config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	s.engine = gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.config.Server.CORSAllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	if len(s.config.Server.CORSAllowedMethods) > 0 {
		corsConfig.AllowMethods = s.config.Server.CORSAllowedMethods
	}
	if len(s.config.Server.CORSAllowedHeaders) > 0 {
		corsConfig.AllowHeaders = s.config.Server.CORSAllowedHeaders
	}
	corsConfig.MaxAge = 5 * time.Minute
	s.engine.Use(cors.New(corsConfig))

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("starting http server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// setupRoutes wires the global middleware stack and the route table.
// Unlike the teacher, there is no auth/CSRF/rate-limit layer: synthgen
// has no multi-tenant session model to protect, so every route below
// is reachable without credentials.
func (s *Server) setupRoutes() {
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger(s.logger))
	s.engine.Use(middleware.Recovery(s.logger))
	s.engine.Use(middleware.Metrics())

	s.engine.GET("/health", s.handlers.Health.Check)
	s.engine.HEAD("/health", s.handlers.Health.Check)
	s.engine.GET("/metrics", s.handlers.Metrics.Handle)

	api := s.engine.Group("/api")
	{
		api.POST("/generate", s.handlers.Generate.Generate)
		api.POST("/validate", s.handlers.Generate.Validate)
		api.GET("/download/:runID", s.handlers.Generate.Download)
		api.GET("/templates", s.handlers.Templates.List)
		api.GET("/templates/:name", s.handlers.Templates.Get)
	}

	s.engine.GET("/ws/progress", s.handlers.Progress.Stream)
}

// Shutdown drains in-flight requests within the server's configured
// shutdown timeout, then closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(shutdownCtx)
}
