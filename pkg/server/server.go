// Package server serves posts over HTTP for local preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/gin-gonic/gin"

	contentlifecycle "github.com/aretw0/folio/pkg/adapters/lifecycle"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
	"github.com/aretw0/folio/pkg/render"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":3000"

// Config configures a Server.
type Config struct {
	Site        render.Site
	Addr        string
	Description string
	FeedLimit   int
	// Cache serves every request from the shared load cycle instead of
	// reading the content directory again.
	Cache  bool
	Logger *slog.Logger
}

// Server is the preview HTTP server.
type Server struct {
	svc      *core.Service
	cfg      Config
	logger   *slog.Logger
	renderer *render.Renderer
	dates    *dates.Formatter
	engine   *gin.Engine
}

// New creates a Server over svc.
func New(svc *core.Service, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		svc:      svc,
		cfg:      cfg,
		logger:   logger,
		renderer: render.NewRenderer(logger),
		dates:    dates.NewFormatter(logger),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), Logging(logger))
	s.routes(engine)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) cycle() *core.Cycle {
	if s.cfg.Cache {
		return s.svc.Current()
	}
	return s.svc.NewCycle()
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.logger.Info("preview server stopped")
	return nil
}

// Watch invalidates the shared load cycle whenever the content changes,
// until ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	events, err := s.svc.Watch(ctx)
	if err != nil {
		return err
	}

	src := contentlifecycle.NewSource(events, s.logger)
	if err := src.Start(ctx); err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for e := range src.Events() {
			s.logger.Info("content changed", "event", e.String())
			s.svc.Invalidate()
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("content watcher failed", "error", err)
	}))
	return nil
}
