// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Craftfolio API. It organizes routes into public, authenticated, and admin
// groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"craftfolio/internal/auth"
	"craftfolio/internal/handlers"
	"craftfolio/internal/middleware"
	"craftfolio/internal/store"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Users       *store.UserStore
	Tokens      *auth.Tokens
	Auth        *handlers.Auth
	Portfolios  *handlers.Portfolios
	Public      *handlers.Public
	Admin       *handlers.Admin
	CORSOrigins string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(corsMiddleware(deps.CORSOrigins))

	// Credential endpoints share one limiter keyed by client IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	authenticate := middleware.Authenticate(deps.Tokens, deps.Users)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", deps.Auth.Signup)

			r.Group(func(r chi.Router) {
				r.Use(loginLimiter.Middleware)
				r.Post("/login", deps.Auth.Login)
				r.Post("/forgot-password", deps.Auth.ForgotPassword)
			})

			r.Post("/reset-password", deps.Auth.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/profile", deps.Auth.Profile)
			})
		})

		r.Route("/portfolios", func(r chi.Router) {
			// Published portfolios are world-readable.
			r.Get("/public/{slug}", deps.Public.PortfolioBySlug)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", deps.Portfolios.Create)
				r.Get("/", deps.Portfolios.List)
				r.Get("/{id}", deps.Portfolios.Get)
				r.Patch("/{id}", deps.Portfolios.Update)
				r.Delete("/{id}", deps.Portfolios.Delete)
				r.Post("/{id}/publish", deps.Portfolios.Publish)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Get("/users", deps.Admin.Users)
		})
	})

	return r
}

// corsMiddleware builds the CORS layer from a comma-separated origin list.
func corsMiddleware(origins string) func(http.Handler) http.Handler {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
