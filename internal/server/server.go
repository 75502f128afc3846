// Package server exposes the string service over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/runnerr0/strand/internal/service"
)

const (
	defaultMaxBodySize = 1 << 20 // 1MB
	shutdownTimeout    = 10 * time.Second
	requestIDHeader    = "X-Request-ID"
)

// Server is the strand HTTP server.
type Server struct {
	svc         *service.Service
	logger      *slog.Logger
	router      *gin.Engine
	maxBodySize int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodySize caps request bodies at n bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodySize = n
		}
	}
}

// New creates a Server with all routes registered.
func New(svc *service.Service, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		svc:         svc,
		logger:      logger,
		router:      gin.New(),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery(), s.requestID(), s.accessLog(), s.limitBody())

	s.router.GET("/healthz", s.handleHealth)

	s.router.POST("/strings", s.handleCreate)
	s.router.GET("/strings", s.handleList)
	// Values may contain slashes, so the value routes use a catch-all. The
	// natural-language endpoint shares that prefix and is dispatched from
	// handleGet.
	s.router.GET("/strings/*value", s.handleGet)
	s.router.DELETE("/strings/*value", s.handleDelete)

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodySize)
		}
		c.Next()
	}
}
