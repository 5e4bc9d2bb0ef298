// Package api composes the versioned parrot APIs into a single HTTP
// surface. Each version is an independent router mounted under its own
// path prefix; the gateway adds nothing but the dispatch and a discovery
// catalog at the root.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	v1 "github.com/parrotdev/parrot/internal/api/v1"
	v2 "github.com/parrotdev/parrot/internal/api/v2"
	"github.com/parrotdev/parrot/internal/service"
)

// ServerOption configures the gateway
type ServerOption func(*serverConfig)

// serverConfig holds the gateway configuration
type serverConfig struct {
	middlewares []func(http.Handler) http.Handler
	baseURL     string
}

// WithMiddlewares adds middleware to the gateway
func WithMiddlewares(mw ...func(http.Handler) http.Handler) ServerOption {
	return func(cfg *serverConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithBaseURL sets the externally reachable base URL advertised in the
// catalog's documentation links.
func WithBaseURL(baseURL string) ServerOption {
	return func(cfg *serverConfig) {
		cfg.baseURL = baseURL
	}
}

// NewServer creates and configures the HTTP router with the given service
// and options. Mounting a new API version requires one Mount call and one
// catalog entry; existing versions are untouched.
func NewServer(svc service.Core, opts ...ServerOption) *chi.Mux {
	cfg := &serverConfig{
		middlewares: []func(http.Handler) http.Handler{},
		baseURL:     "http://127.0.0.1:8000",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()

	for _, mw := range cfg.middlewares {
		r.Use(mw)
	}

	catalog := NewCatalog(cfg.baseURL)
	r.Get("/", catalog.handler)

	r.Mount("/v1", v1.Router(svc))
	r.Mount("/v2", v2.Router(svc))

	return r
}

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
