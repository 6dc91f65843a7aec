// Package server implements the HTTP transport layer for the vambrace page
// server: routing, middleware, and the adapters that turn composed views into
// http.Handlers.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/vambrace/vambrace/internal/cache"
	"github.com/vambrace/vambrace/internal/storage"
	"github.com/vambrace/vambrace/internal/telemetry"
	"github.com/vambrace/vambrace/internal/viewcache"
)

// ReadyChecker reports whether the system is ready to serve traffic.
type ReadyChecker func(ctx context.Context) error

// ViewOptions carries the per-view behavior configuration.
type ViewOptions struct {
	Headline      string                // "headline" render-context value; empty = behavior not applied
	StaticContext string                // JSON object merged into every render context; empty = not applied
	CacheTimeout  viewcache.TimeoutSpec // response cache timeout; empty = default
}

// Deps holds all dependencies for the HTTP server.
type Deps struct {
	Store          storage.Store
	Cache          cache.Store        // nil = no response caching
	Metrics        *telemetry.Metrics // nil = no metrics collection
	MetricsHandler http.Handler       // nil = no /metrics route
	ReadyCheck     ReadyChecker       // nil = always ready (for tests)
	Views          ViewOptions
}

// New creates an http.Handler with all routes and middleware wired. View
// behaviors are constructed here so configuration errors surface at startup.
func New(deps Deps) (http.Handler, error) {
	s := &server{deps: deps}

	pages, echo, err := s.buildViews()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(s.recovery)
	r.Use(s.requestID)
	r.Use(s.logging)
	if deps.Metrics != nil {
		r.Use(metricsMiddleware(deps.Metrics))
	}

	// System endpoints
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Page views, served through the response cache when one is configured.
	r.Group(func(r chi.Router) {
		if deps.Cache != nil {
			r.Use(s.serveFromCache)
		}
		r.Get("/pages", s.serveView(pages.list))
		r.Get("/pages/{id}/{slug}", s.serveView(pages.detail))
	})

	// All verbs land on the same handler.
	r.Handle("/echo", s.serveView(echo))

	// Cache administration
	r.Route("/admin/cache", func(r chi.Router) {
		r.Post("/purge", s.handleCachePurge)
		r.Post("/invalidate", s.handleCacheInvalidate)
	})

	return r, nil
}

type server struct {
	deps Deps
	sf   singleflight.Group // collapses concurrent page lookups
}
