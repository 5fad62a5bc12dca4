// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api serves the soak harness HTTP surface: health, status and
// Prometheus metrics of the bus under test.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/internal/api/middleware"
	"github.com/ManuGH/minibus/internal/health"
	"github.com/ManuGH/minibus/internal/log"
	"github.com/ManuGH/minibus/internal/version"
)

const shutdownTimeout = 5 * time.Second

// BusStatus is the read-only view of a bus exposed on /status.
type BusStatus interface {
	Name() string
	Subscribers() int
	HasPendingEvents() bool
}

// Config configures the HTTP server.
type Config struct {
	ListenAddr     string
	TracingService string // empty disables request tracing
	RateLimit      int    // requests per minute per client IP, 0 disables
	RunID          string
	Checkers       []health.Checker // in addition to the subscriber check
}

// Server exposes the status of one bus over HTTP.
type Server struct {
	cfg     Config
	bus     BusStatus
	started time.Time
	logger  zerolog.Logger
	health  *health.Manager
	handler http.Handler
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	RunID         string  `json:"run_id,omitempty"`
	Bus           string  `json:"bus"`
	Subscribers   int     `json:"subscribers"`
	Pending       bool    `json:"pending"`
	UptimeSeconds float64 `json:"uptime_s"`
}

// New creates a server for bus.
func New(cfg Config, bus BusStatus) *Server {
	s := &Server{
		cfg:     cfg,
		bus:     bus,
		started: time.Now(),
		logger:  log.WithComponent("api"),
		health:  health.NewManager(version.Version),
	}
	s.health.RegisterChecker(health.NewSubscribersChecker(bus))
	for _, c := range cfg.Checkers {
		s.health.RegisterChecker(c)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics:     true,
		TracingService:    s.cfg.TracingService,
		RateLimitRequests: s.cfg.RateLimit,
		RateLimitWindow:   time.Minute,
	})
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		RunID:         s.cfg.RunID,
		Bus:           s.bus.Name(),
		Subscribers:   s.bus.Subscribers(),
		Pending:       s.bus.HasPendingEvents(),
		UptimeSeconds: time.Since(s.started).Seconds(),
	})
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str(log.FieldEvent, "api.listening").
			Str(log.FieldListenAddr, ln.Addr().String()).
			Msg("status server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown status server: %w", err)
	}
	<-errCh
	s.logger.Info().Str(log.FieldEvent, "api.stopped").Msg("status server stopped")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
