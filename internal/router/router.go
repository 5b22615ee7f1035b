// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// storefront API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"cinesou/internal/handlers"
	"cinesou/internal/middleware"
	"cinesou/internal/session"
)

// New creates and returns the configured Chi router. secure marks the
// visitor and CSRF cookies Secure. limiter may be nil to disable rate
// limiting.
func New(secure bool, limiter *middleware.RateLimiter, catalog *handlers.Catalog, purchase *handlers.Purchase, theme *handlers.Theme, contact *handlers.Contact) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check: no visitor cookie, no CSRF, no rate limit.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Use(session.Visitor(secure))
		r.Use(middleware.NewCSRF(secure))

		// Catalog
		r.Get("/movies", catalog.List)
		r.Route("/movies/{id}", func(r chi.Router) {
			r.Get("/", catalog.Movie)
			r.Get("/purchase", purchase.Quote)
			r.Post("/purchase", purchase.Buy)
		})
		r.Get("/featured", catalog.Featured)
		r.Get("/facets", catalog.Facets)

		// Theme
		r.Get("/theme", theme.Get)
		r.Put("/theme", theme.Set)
		r.Delete("/theme", theme.Reset)
		r.Post("/theme/toggle", theme.Toggle)
		r.Post("/theme/system", theme.System)

		// Contact
		r.Post("/contact/validate", contact.Validate)
		r.Post("/contact", contact.Submit)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
