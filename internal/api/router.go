// Package api exposes the access engine over HTTP for the UI and CRUD services.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rentwise/accessgate/pkg/access"
	"github.com/rentwise/accessgate/pkg/logger"
)

// Options configures the router. Nil handlers are not mounted.
type Options struct {
	Logger    *slog.Logger
	Liveness  http.Handler
	Readiness http.Handler
}

// NewRouter builds the HTTP surface:
//
//	GET /v1/owners/{ownerID}/status
//	GET /v1/owners/{ownerID}/summary
//	GET /v1/owners/{ownerID}/usage/{resource}
//	GET /v1/owners/{ownerID}/can-add/{resource}
//	GET /v1/owners/{ownerID}/blocked/{resource}
//	GET /v1/owners/{ownerID}/{resource}/{id}/visibility
func NewRouter(svc access.Service, opts Options) http.Handler {
	if svc == nil {
		panic("api: access.Service is required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.Recoverer)

	if opts.Liveness != nil {
		r.Method(http.MethodGet, "/healthz", opts.Liveness)
	}
	if opts.Readiness != nil {
		r.Method(http.MethodGet, "/readyz", opts.Readiness)
	}

	r.Route("/v1/owners/{ownerID}", func(r chi.Router) {
		r.Use(requestLogger(log))

		r.Get("/status", h.status)
		r.Get("/summary", h.summary)
		r.Get("/usage/{resource}", h.usage)
		r.Get("/can-add/{resource}", h.canAdd)
		r.Get("/blocked/{resource}", h.blocked)
		r.Get("/{resource}/{id}/visibility", h.visibility)
	})

	return r
}
