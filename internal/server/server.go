// Package server exposes scenarios, generated preflop spots and attempt
// history over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lox/pokerdrill/internal/attempts"
)

// Server is the HTTP front end.
type Server struct {
	scenarios ScenarioStore
	attempts  attempts.Store
	logger    zerolog.Logger
	clock     quartz.Clock
	router    chi.Router
	httpSrv   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used to stamp attempts and seed unseeded spots.
func WithClock(c quartz.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// New creates a server over the given stores.
func New(scenarios ScenarioStore, store attempts.Store, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		scenarios: scenarios,
		attempts:  store,
		logger:    logger.With().Str("component", "http").Logger(),
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Access-Control-Allow-Origin", "*"))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/scenarios/{id}", s.handleGetScenario)
		r.Get("/scenarios/{id}/stats", s.handleScenarioStats)
		r.Get("/preflop/spot", s.handlePreflopSpot)
		r.Get("/attempts", s.handleListAttempts)
		r.Post("/attempts", s.handleAppendAttempt)
		r.Delete("/attempts", s.handleClearAttempts)
	})
	return r
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens on addr and serves until Shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown. It returns nil at once, closing ln,
// if Shutdown has already been called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
	err := s.httpSrv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server. A later Serve returns
// immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
