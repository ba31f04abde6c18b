// Package server hosts the controller for browser and terminal surfaces.
//
// It exposes the context menu, the pull endpoint for the latest result, the
// preference, a websocket push channel and a small popup page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/display"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server settings.
type Config struct {
	Addr string
	// CORSOrigins lists origins besides this host's own pages that may call
	// the server, for example "chrome-extension://<id>".
	CORSOrigins []string
	// OverlayDuration is passed to the popup page's overlay.
	OverlayDuration time.Duration
}

// Server is the local host for one controller.
type Server struct {
	cfg        Config
	origins    originPolicy
	controller *furigo.Controller
	hub        *Hub
	prefs      furigo.PreferenceStore
	surface    *display.Surface
	renderer   *display.HTMLRenderer
	logger     zerolog.Logger
	router     chi.Router

	pending sync.WaitGroup

	mu   sync.Mutex
	http *http.Server
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New builds a Server around ctrl. The hub must be the controller's notifier.
func New(cfg Config, ctrl *furigo.Controller, hub *Hub, prefs furigo.PreferenceStore, opts ...Option) (*Server, error) {
	if ctrl == nil {
		return nil, errors.New("controller is required")
	}
	if hub == nil {
		hub = NewHub()
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	renderer, err := display.NewHTMLRenderer(cfg.OverlayDuration)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:        cfg,
		origins:    newOriginPolicy(cfg.CORSOrigins),
		controller: ctrl,
		hub:        hub,
		prefs:      prefs,
		renderer:   renderer,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if hub.checkOrigin == nil {
		hub.checkOrigin = s.origins.checkOrigin
	}

	pull := display.PullerFunc(func(ctx context.Context) (furigo.TranslationResult, error) {
		return ctrl.Latest(), nil
	})
	s.surface = display.NewSurface(pull, prefs, display.WithLogger(s.logger))
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(corsOptions(s.origins)))
	r.Use(originGuard(s.origins))

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.hub.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", s.handleMenu)
		r.Post("/menu/click", s.handleClick)
		r.Get("/translation", s.handleTranslation)
		r.Get("/preferences", s.handleGetPreference)
		r.Put("/preferences", s.handlePutPreference)
	})

	r.Get("/", s.handlePage)
	r.Get("/popup/view", s.handleView)
	r.Post("/popup/learning-mode", s.handleLearningMode)

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.http = srv
	s.mu.Unlock()

	s.logger.Info().Str("addr", s.cfg.Addr).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for running translations and
// disconnects subscribers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.http
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	s.hub.Close()
	return err
}

// Wait blocks until every accepted click has finished.
func (s *Server) Wait() {
	s.pending.Wait()
}
