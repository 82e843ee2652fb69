package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"secrethitler/internal/config"
	"secrethitler/internal/engine"
	"secrethitler/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server ties together HTTP serving and WebSocket handling for one game.
type Server struct {
	cfg      config.Config
	hub      *Hub
	handlers *Handlers
	registry *prometheus.Registry
	logger   *slog.Logger
}

func New(cfg config.Config, board *engine.Board, logger *slog.Logger) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hub := NewHub(board, logger, metrics.New(reg))
	return &Server{
		cfg:      cfg,
		hub:      hub,
		handlers: NewHandlers(hub, cfg, logger),
		registry: reg,
		logger:   logger,
	}
}

// Hub returns the server's game hub.
func (s *Server) Hub() *Hub { return s.hub }

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ws", s.handlers.HandleWS)
	r.Get("/api/qr", s.handlers.HandleQR)
	r.Get("/api/player-id", s.handlers.HandlePlayerID)
	r.Get("/healthz", s.handlers.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// Run serves HTTP and runs the hub until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.hub.Run(ctx)
	})
	g.Go(func() error {
		s.logger.Info("server starting", "addr", "http://localhost"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
