// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains of the two
// servers: the portal (public site and back-office) and the content API.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mlomp/internal/api"
	"mlomp/internal/handlers"
	"mlomp/internal/middleware"
	"mlomp/internal/models"
)

// Portal groups the dependencies of the portal router.
type Portal struct {
	Sessions middleware.SessionStore
	Verifier middleware.TokenVerifier
	Admin    *handlers.Admin
	Auth     *handlers.Auth
	Public   *handlers.Public
	Static   fs.FS
	// LoginLimit throttles login and registration attempts; nil disables it.
	LoginLimit *middleware.RateLimiter
	// VerifyInterval is how often the session's API token is re-checked.
	VerifyInterval time.Duration
	Secure         bool
}

// NewPortal creates the portal router.
func NewPortal(p Portal) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics("portal"))
	r.Use(middleware.SecureHeaders(p.Secure))
	r.Use(middleware.LoadSession(p.Sessions))

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	if p.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(p.Static)))
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.CSRF(p.Secure))

		r.Group(func(r chi.Router) {
			if p.LoginLimit != nil {
				r.Use(p.LoginLimit.Middleware)
			}
			r.Post("/login", p.Auth.LoginSubmit)
			r.Post("/register", p.Auth.RegisterSubmit)
		})
		r.Get("/login", p.Auth.LoginPage)
		r.Get("/register", p.Auth.RegisterPage)
		r.Post("/logout", p.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.VerifyAPIToken(p.Verifier, p.Sessions, p.VerifyInterval))
			r.Use(middleware.RequireEditor)
			p.Admin.Routes(r)
		})
	})

	r.Group(p.Public.Routes)
	r.NotFound(p.Public.NotFound)

	return r
}

// API groups the dependencies of the content API router.
type API struct {
	Auth        *api.Auth
	Collections []api.Mountable
	Verifier    middleware.ClaimsVerifier
	// AuthLimit throttles login and registration; nil disables it.
	AuthLimit *middleware.RateLimiter
}

// NewAPI creates the content API router. Collections are mounted under
// /api/<name>; reads are public, writes need an admin or editor token.
func NewAPI(a API) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics("api"))
	r.Use(middleware.SecureHeaders(false))

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.BearerAuth(a.Verifier))

		var limit func(http.Handler) http.Handler
		if a.AuthLimit != nil {
			limit = a.AuthLimit.Middleware
		}
		r.Route("/auth", func(r chi.Router) { a.Auth.Routes(r, limit) })

		protect := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)
		for _, c := range a.Collections {
			r.Route("/"+c.Name(), func(r chi.Router) { c.Routes(r, protect) })
		}
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
