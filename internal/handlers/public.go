// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mlomp/internal/cache"
	"mlomp/internal/client"
	"mlomp/internal/content"
	"mlomp/internal/fallback"
	"mlomp/internal/metrics"
	"mlomp/internal/models"
	"mlomp/internal/render"
)

// Banners shown when a page falls back to built-in content.
const (
	BannerNews        = "Impossible de charger les dernières actualités. Affichage des actualités archivées."
	BannerProjects    = "Impossible de charger les projets. Affichage des projets de référence."
	BannerServices    = "Impossible de charger les services. Affichage des services de référence."
	BannerProcedures  = "Erreur lors du chargement des démarches. Affichage des démarches courantes."
	BannerInvestments = "Impossible de charger les projets d'investissement. Affichage des projets de référence."
	BannerGallery     = "Impossible de charger les images. Veuillez réessayer plus tard."
)

const (
	// CitizenProcedures is how many procedures the citizen space lists.
	CitizenProcedures = 4
	// InvestmentStep is how many more investments "show more" reveals.
	InvestmentStep = 3
	homeNews       = 3
)

// pageParams are the query parameters public pages read; only they take
// part in the page cache key.
var pageParams = []string{"categorie", "n", "photo"}

// PageCache stores rendered public pages. *cache.PageCache satisfies it.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

// Public groups the handlers of the public site. Every page reads the
// content API per request and falls back to the built-in content when
// the API cannot be reached. Pages rendered from live data are cached.
type Public struct {
	renderer *render.Renderer
	services *content.Services
	cache    PageCache
}

// NewPublic creates the public handler group. pageCache may be nil.
func NewPublic(renderer *render.Renderer, services *content.Services, pageCache PageCache) *Public {
	return &Public{renderer: renderer, services: services, cache: pageCache}
}

// Routes mounts the public pages on r.
func (p *Public) Routes(r chi.Router) {
	r.Get("/", p.Home)
	r.Get("/presentation", p.Presentation)
	r.Get("/actualites", p.News)
	r.Get("/actualites/{id}", p.NewsDetail)
	r.Get("/projets", p.Projects)
	r.Get("/services", p.Services)
	r.Get("/services/{id}", p.ServiceDetail)
	r.Get("/espace-citoyen", p.CitizenSpace)
	r.Get("/investissements", p.Investments)
	r.Get("/investissements/{id}", p.InvestmentDetail)
	r.Get("/galerie", p.Gallery)
}

// page is a public page ready to render.
type page struct {
	template string
	status   int
	data     render.PublicData
	// cacheable is false when any part came from the built-in content.
	cacheable bool
}

// serve answers from the page cache or builds, renders and caches the page.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, build func(ctx context.Context) page) {
	ctx := r.Context()
	key := cache.Key(r.URL, pageParams...)
	if p.cache != nil {
		if html, ok := p.cache.Get(ctx, key); ok {
			writeHTML(w, http.StatusOK, html)
			return
		}
	}

	pg := build(ctx)
	if pg.status == 0 {
		pg.status = http.StatusOK
	}
	html, err := p.renderer.Public(pg.template, &pg.data)
	if err != nil {
		slog.Error("public render failed", "template", pg.template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p.cache != nil && pg.cacheable && pg.status == http.StatusOK {
		p.cache.Set(ctx, key, html)
	}
	writeHTML(w, pg.status, html)
}

func writeHTML(w http.ResponseWriter, status int, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(html)
}

// listOr returns the API list, or the built-in items with banner when the
// API fails.
func listOr[T any](ctx context.Context, name string, list func(context.Context) ([]T, error), builtin func() []T, banner string) ([]T, string) {
	items, err := list(ctx)
	if err != nil {
		slog.Warn("content api unavailable, using built-in content", "page", name, "error", err)
		metrics.FallbackRendersTotal.WithLabelValues(name).Inc()
		return builtin(), banner
	}
	return items, ""
}

// found is the outcome of a detail lookup.
type found[T any] struct {
	item    T
	ok      bool
	builtin bool
	banner  string
}

// findOr fetches one item. Items the API does not know, or cannot serve,
// are looked up in the built-in content.
func findOr[T any](ctx context.Context, name string, id models.ID, get func(context.Context, models.ID) (T, error),
	builtin []T, idOf func(*T) models.ID, banner string) found[T] {
	item, err := get(ctx, id)
	if err == nil {
		return found[T]{item: item, ok: true}
	}
	res := found[T]{}
	if !errors.Is(err, client.ErrNotFound) {
		slog.Warn("content api unavailable, using built-in content", "page", name, "id", id, "error", err)
		metrics.FallbackRendersTotal.WithLabelValues(name).Inc()
		res.banner = banner
	}
	res.item, res.ok = fallback.Find(builtin, id, idOf)
	res.builtin = true
	return res
}

func notFoundPage() page {
	return page{template: "not_found", status: http.StatusNotFound,
		data: render.PublicData{Title: "Page introuvable"}}
}

// NotFound renders the public 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(context.Context) page { return notFoundPage() })
}

// --- Home & presentation ---

// HomeView is the data of the home page.
type HomeView struct {
	News        []NewsCard
	Procedures  []models.Procedure
	Investments []models.Investment
}

// Home renders the landing page with the latest news.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		news, banner := p.mergedNews(ctx)
		procs, procBanner := listOr(ctx, "home", p.services.Procedures.List, fallback.Procedures, BannerProcedures)
		invs, invBanner := listOr(ctx, "home", p.services.Investments.List, fallback.Investments, BannerInvestments)
		cards := make([]NewsCard, 0, homeNews)
		for _, n := range news[:min(homeNews, len(news))] {
			cards = append(cards, newsCard(n))
		}
		return page{
			template: "home",
			data: render.PublicData{Title: "Accueil", Nav: "home", Banner: firstOf(banner, procBanner, invBanner), Data: HomeView{
				News:        cards,
				Procedures:  procs[:min(CitizenProcedures, len(procs))],
				Investments: invs[:min(InvestmentStep, len(invs))],
			}},
			cacheable: banner == "" && procBanner == "" && invBanner == "",
		}
	})
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Presentation renders the static presentation of the commune.
func (p *Public) Presentation(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(context.Context) page {
		return page{template: "presentation", cacheable: true,
			data: render.PublicData{Title: "Présentation de la commune", Nav: "presentation"}}
	})
}

// --- News ---

// NewsCard is a news item prepared for display.
type NewsCard struct {
	ID       models.ID
	Title    string
	Excerpt  string
	Content  string
	Date     string
	Author   string
	Category string
	Image    string
	ReadTime string
}

func newsCard(n models.News) NewsCard {
	author := fallback.Author
	if n.Author != nil && n.Author.Username != "" {
		author = n.Author.Username
	}
	return NewsCard{
		ID:       n.ID,
		Title:    n.Title,
		Excerpt:  content.Excerpt(n.Content),
		Content:  n.Content,
		Date:     content.FrenchDate(n.CreatedAt),
		Author:   author,
		Category: content.NewsCategoryLabel(n.Category),
		Image:    deref(n.Image),
		ReadTime: content.ReadTime(n.Content),
	}
}

// mergedNews lists the API news followed by the built-in items whose ids
// the API did not return. An empty API answer keeps the built-in list.
func (p *Public) mergedNews(ctx context.Context) ([]models.News, string) {
	items, banner := listOr(ctx, "news", p.services.News.List, fallback.News, BannerNews)
	if banner != "" {
		return items, banner
	}
	return MergeNews(items, fallback.News()), ""
}

// MergeNews appends to live the built-in items whose ids are absent.
func MergeNews(live, builtin []models.News) []models.News {
	if len(live) == 0 {
		return builtin
	}
	seen := make(map[models.ID]bool, len(live))
	for _, n := range live {
		seen[n.ID] = true
	}
	out := append([]models.News(nil), live...)
	for _, n := range builtin {
		if !seen[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// News renders the news list.
func (p *Public) News(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		items, banner := p.mergedNews(ctx)
		cards := make([]NewsCard, 0, len(items))
		for _, n := range items {
			cards = append(cards, newsCard(n))
		}
		return page{template: "news", cacheable: banner == "",
			data: render.PublicData{Title: "Actualités", Nav: "news", Banner: banner, Data: cards}}
	})
}

// NewsDetail renders one article with its Markdown body.
func (p *Public) NewsDetail(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		id, err := models.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			return notFoundPage()
		}
		res := findOr(ctx, "news_detail", id, p.services.News.Get, fallback.News(),
			func(n *models.News) models.ID { return n.ID }, BannerNews)
		if !res.ok {
			return notFoundPage()
		}
		return page{template: "news_detail", cacheable: !res.builtin,
			data: render.PublicData{Title: res.item.Title, Nav: "news", Banner: res.banner, Data: newsCard(res.item)}}
	})
}

// --- Projects ---

// Projects renders the municipal projects.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		items, banner := listOr(ctx, "projects", p.services.Projects.List, fallback.Projects, BannerProjects)
		return page{template: "projects", cacheable: banner == "",
			data: render.PublicData{Title: "Projets", Nav: "projects", Banner: banner, Data: items}}
	})
}

// --- Services ---

// ServicesView is the data of the services page.
type ServicesView struct {
	Items      []models.Service
	Category   string
	Categories []Option
}

// Services renders the public services, optionally filtered by
// ?categorie=.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		category := r.URL.Query().Get("categorie")
		list := p.services.Services.List
		builtin := fallback.Services
		if category != "" {
			list = func(ctx context.Context) ([]models.Service, error) {
				return p.services.Services.ListByCategory(ctx, category)
			}
			builtin = func() []models.Service {
				var out []models.Service
				for _, s := range fallback.Services() {
					if s.Category == category {
						out = append(out, s)
					}
				}
				return out
			}
		}
		items, banner := listOr(ctx, "services", list, builtin, BannerServices)
		return page{template: "services", cacheable: banner == "",
			data: render.PublicData{Title: "Services", Nav: "services", Banner: banner, Data: ServicesView{
				Items:      items,
				Category:   category,
				Categories: options(models.ServiceCategories, content.ServiceCategoryLabel),
			}}}
	})
}

// ServiceDetail renders one public service.
func (p *Public) ServiceDetail(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		id, err := models.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			return notFoundPage()
		}
		res := findOr(ctx, "service_detail", id, p.services.Services.Get, fallback.Services(),
			func(s *models.Service) models.ID { return s.ID }, BannerServices)
		if !res.ok {
			return notFoundPage()
		}
		return page{template: "service_detail", cacheable: !res.builtin,
			data: render.PublicData{Title: res.item.Title, Nav: "services", Banner: res.banner, Data: res.item}}
	})
}

// --- Citizen space ---

// CitizenSpace renders the first procedures of the citizen space.
func (p *Public) CitizenSpace(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		items, banner := listOr(ctx, "citizen", p.services.Procedures.List, fallback.Procedures, BannerProcedures)
		items = items[:min(CitizenProcedures, len(items))]
		return page{template: "citizen", cacheable: banner == "",
			data: render.PublicData{Title: "Espace citoyen", Nav: "citizen", Banner: banner, Data: items}}
	})
}

// --- Investments ---

// InvestmentsView is the data of the investments page.
type InvestmentsView struct {
	Items []models.Investment
	Total int
	// More is the ?n= value of the "show more" link, 0 when all are shown.
	More int
}

// Investments renders the investment opportunities, InvestmentStep at a
// time; ?n= sets how many are shown.
func (p *Public) Investments(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		items, banner := listOr(ctx, "investments", p.services.Investments.List, fallback.Investments, BannerInvestments)
		return page{template: "investments", cacheable: banner == "",
			data: render.PublicData{Title: "Investir à Mlomp", Nav: "investments", Banner: banner,
				Data: paginate(items, r.URL.Query().Get("n"))}}
	})
}

func paginate(items []models.Investment, n string) InvestmentsView {
	count, err := strconv.Atoi(n)
	if err != nil || count < InvestmentStep {
		count = InvestmentStep
	}
	v := InvestmentsView{Items: items[:min(count, len(items))], Total: len(items)}
	if len(items) > count {
		v.More = count + InvestmentStep
	}
	return v
}

// InvestmentDetail renders one investment opportunity.
func (p *Public) InvestmentDetail(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		id, err := models.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			return notFoundPage()
		}
		res := findOr(ctx, "investment_detail", id, p.services.Investments.Get, fallback.Investments(),
			func(i *models.Investment) models.ID { return i.ID }, BannerInvestments)
		if !res.ok {
			return notFoundPage()
		}
		return page{template: "investment_detail", cacheable: !res.builtin,
			data: render.PublicData{Title: res.item.Title, Nav: "investments", Banner: res.banner, Data: res.item}}
	})
}

// --- Gallery ---

// GalleryView is the data of the gallery page.
type GalleryView struct {
	Items []models.GalleryItem
	// Selected is the item open in the lightbox.
	Selected   *models.GalleryItem
	Prev, Next models.ID
}

// Gallery renders the photo and video grid; ?photo=<id> opens an item in
// the lightbox.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, func(ctx context.Context) page {
		items, banner := listOr(ctx, "gallery", p.services.Gallery.List, fallback.Gallery, BannerGallery)
		return page{template: "gallery", cacheable: banner == "",
			data: render.PublicData{Title: "Galerie", Nav: "gallery", Banner: banner,
				Data: lightbox(items, models.ID(r.URL.Query().Get("photo")))}}
	})
}

func lightbox(items []models.GalleryItem, selected models.ID) GalleryView {
	v := GalleryView{Items: items}
	if selected == "" {
		return v
	}
	for i := range items {
		if items[i].ID != selected {
			continue
		}
		v.Selected = &items[i]
		if i > 0 {
			v.Prev = items[i-1].ID
		}
		if i+1 < len(items) {
			v.Next = items[i+1].ID
		}
		break
	}
	return v
}
