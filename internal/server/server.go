// Package server exposes the planner over HTTP: solving plans, listing
// items, and reading saved plans.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/napolitain/factory-planner/internal/config"
	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/models"
	"github.com/napolitain/factory-planner/internal/store"
)

const name = "factory-planner"

// overridden during build with ldflags
var version = "dev"

// PlanStore reads saved plans
type PlanStore interface {
	FindByName(ctx context.Context, name string) (*store.SavedPlan, error)
	ListAll(ctx context.Context) ([]*store.SavedPlan, error)
}

// Option configures a Server
type Option func(*Server)

// WithPlanStore enables the saved plan endpoints
func WithPlanStore(ps PlanStore) Option {
	return func(s *Server) {
		s.plans = ps
	}
}

// WithDefaults sets the defaults every request's specification starts from
func WithDefaults(d factory.Defaults) Option {
	return func(s *Server) {
		s.defaults = d
	}
}

// Server represents the HTTP server
type Server struct {
	config      config.ServerConfig
	data        *models.GameData
	defaults    factory.Defaults
	plans       PlanStore
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	mu          sync.RWMutex
	ready       bool
}

// New creates a server over immutable game data. Each request builds its
// own specification from data, so handlers share no mutable state.
func New(cfg config.ServerConfig, data *models.GameData, opts ...Option) *Server {
	s := &Server{
		config:      cfg,
		data:        data,
		defaults:    factory.DefaultDefaults(),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

func (s *Server) isReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.SetReady(true)
	slog.Info("listening", "address", s.httpServer.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}

// Run starts the server and blocks until SIGINT or SIGTERM
func Run(s *Server) error {
	slog.Info("starting server",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("address", s.httpServer.Addr),
		slog.Float64("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Duration("readTimeout", s.config.ReadTimeout),
		slog.Duration("writeTimeout", s.config.WriteTimeout),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
