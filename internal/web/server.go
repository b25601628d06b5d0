// Package web exposes the recommender as a JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-moodmuse/internal/logger"
	"github.com/justestif/go-moodmuse/internal/recommend"
	"github.com/justestif/go-moodmuse/internal/session"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	Recommender *recommend.Service
	Sessions    session.Store
	Log         *logger.Logger
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	log      *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: NewHandlers(cfg.Recommender, cfg.Sessions, cfg.Log),
		log:      cfg.Log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/healthz", h.Health)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/session", h.CreateSession)
		r.Get("/session", h.GetSession)
		r.Post("/mood/analyze", h.AnalyzeMood)
		r.Post("/songs", h.Songs)
		r.Patch("/songs", h.SetLanguage)
		r.Get("/intents", h.Intents)
		r.Get("/catalog/profile", h.Profile)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", "http://"+s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
