// Package server binds the gateway's HTTP surface: middleware stack, the /api
// dispatch table, the landing page and health check, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"library-gateway/client"
	"library-gateway/config"
	"library-gateway/middleware"
	"library-gateway/requestid"
	"library-gateway/routes"
)

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

const landingHTML = `<div style="font-family: sans-serif; padding: 40px; text-align: center;">
    <h1>Library API Gateway</h1>
    <p>Status: Running</p>
    <hr />
    <p>This is the RESTful entry point for the backend. Use <strong>/api</strong> for data endpoints or <strong>/health</strong> for status.</p>
</div>`

// Server is the gateway's HTTP transport binding.
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// New assembles the full handler stack. Middleware order matters: the
// correlation identifier must exist before logging and recovery run, so both
// can tag their output, and the terminal error writer can echo it.
func New(cfg *config.Config, inv client.Invoker, log zerolog.Logger) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(requestid.Middleware)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recover(log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(landingHTML))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = fastjson.NewEncoder(w).Encode(map[string]string{
			"status":  "OK",
			"service": "library-gateway",
		})
	})

	r.Group(func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))
		}
		r.Mount("/api", routes.New(inv))
	})

	return &Server{
		http: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: r,
		},
		log: log,
	}
}

// Handler exposes the assembled stack, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks until the listener closes. http.ErrServerClosed is
// the normal result of Shutdown and is not returned as a failure.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("gateway listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests and drains in-flight ones, giving up
// after timeout. In-flight backend calls whose clients are gone simply have
// their results discarded.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info().Msg("shutting down")
	return s.http.Shutdown(ctx)
}
