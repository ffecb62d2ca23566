// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the Mlomp portal.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct. They never touch a
// database: all content goes through the content API client.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"mlomp/internal/content"
	"mlomp/internal/models"
	"mlomp/internal/render"
)

// PageInvalidator drops cached public pages. *cache.PageCache satisfies it.
type PageInvalidator interface {
	InvalidatePage(ctx context.Context, key string)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// Admin groups the back-office handlers and their dependencies.
type Admin struct {
	renderer *render.Renderer
	services *content.Services
	pages    PageInvalidator
}

// NewAdmin creates the back-office handler group. pages may be nil when
// the public page cache is disabled.
func NewAdmin(renderer *render.Renderer, services *content.Services, pages PageInvalidator) *Admin {
	return &Admin{renderer: renderer, services: services, pages: pages}
}

// Routes mounts the dashboard and the six collection screens on r.
func (a *Admin) Routes(r chi.Router) {
	r.Get("/", a.Dashboard)
	for _, s := range a.sections() {
		r.Route(s.base(), s.mount)
	}
}

// DashboardStats counts the items of each collection.
type DashboardStats struct {
	News, Projects, Services, Procedures, Investments, Gallery int
	Latest                                                      []models.News
	Partial                                                     bool
}

// Dashboard renders the back-office home. The six collections are counted
// concurrently; a failing collection shows as zero with a warning.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	var g errgroup.Group

	count := func(name string, into *int, list func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := list(r.Context())
			if err != nil {
				slog.Warn("dashboard count failed", "collection", name, "error", err)
				return err
			}
			*into = n
			return nil
		})
	}
	g.Go(func() error {
		items, err := a.services.News.List(r.Context())
		if err != nil {
			slog.Warn("dashboard count failed", "collection", "news", "error", err)
			return err
		}
		stats.News = len(items)
		stats.Latest = items[:min(5, len(items))]
		return nil
	})
	count("projects", &stats.Projects, lengthOf(a.services.Projects.List))
	count("services", &stats.Services, lengthOf(a.services.Services.List))
	count("procedures", &stats.Procedures, lengthOf(a.services.Procedures.List))
	count("investments", &stats.Investments, lengthOf(a.services.Investments.List))
	count("gallery", &stats.Gallery, lengthOf(a.services.Gallery.List))

	var flashes []render.Flash
	if err := g.Wait(); err != nil {
		stats.Partial = true
		flashes = append(flashes, render.Flash{Type: "warning",
			Message: "Certaines données n'ont pas pu être chargées depuis le serveur"})
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Tableau de bord",
		Section: "dashboard",
		Data:    stats,
		Flashes: flashes,
	})
}

func lengthOf[T any](list func(context.Context) ([]T, error)) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}

// invalidate drops the public pages showing a collection.
func (a *Admin) invalidate(ctx context.Context, pages []string) {
	if a.pages == nil {
		return
	}
	for _, p := range pages {
		if p == "/" {
			a.pages.InvalidatePage(ctx, p)
			continue
		}
		a.pages.InvalidatePrefix(ctx, p)
	}
}
