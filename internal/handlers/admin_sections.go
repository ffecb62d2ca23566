// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strconv"
	"strings"

	"mlomp/internal/content"
	"mlomp/internal/models"
)

const (
	acceptImages = "image/*"
	acceptMedia  = "image/*,video/*"
)

func options(values []string, label func(string) string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: label(v)})
	}
	return out
}

func same(s string) string { return s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sections lists the collection screens in menu order.
func (a *Admin) sections() []mountable {
	return []mountable{
		a.newsSection(),
		a.projectsSection(),
		a.servicesSection(),
		a.proceduresSection(),
		a.investmentsSection(),
		a.gallerySection(),
	}
}

func (a *Admin) newsSection() *section[models.News, models.NewsInput] {
	return &section[models.News, models.NewsInput]{
		admin: a, key: "news", title: "Actualités", singular: "actualité",
		service: a.services.News, schema: content.NewsSchema{},
		fileField: content.NewsConfig.FileField, fileAccept: acceptImages,
		columns: []string{"Titre", "Catégorie", "Auteur", "Date"},
		row: func(n models.News) Row {
			author := "Mairie de Mlomp"
			if n.Author != nil && n.Author.Username != "" {
				author = n.Author.Username
			}
			return Row{ID: n.ID, Thumb: deref(n.Image), Cells: []string{
				n.Title, content.NewsCategoryLabel(n.Category), author, content.FrenchDate(n.CreatedAt),
			}}
		},
		fields: func(p models.NewsInput) []Field {
			cats := append([]Option{{Value: "", Label: "Sans catégorie"}},
				options(models.NewsCategories, content.NewsCategoryLabel)...)
			return []Field{
				{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true},
				{Name: "category", Label: "Catégorie", Type: "select", Value: p.Category, Options: cats},
				{Name: "content", Label: "Contenu", Type: "markdown", Value: p.Content, Required: true,
					Placeholder: "Le texte accepte la mise en forme Markdown"},
			}
		},
		label: func(n models.News) string { return n.Title },
		pages: []string{"/", "/actualites"},
	}
}

func (a *Admin) projectsSection() *section[models.Project, models.ProjectInput] {
	return &section[models.Project, models.ProjectInput]{
		admin: a, key: "projects", title: "Projets", singular: "projet",
		service: a.services.Projects, schema: content.ProjectSchema{},
		fileField: content.ProjectsConfig.FileField, fileAccept: acceptImages,
		columns: []string{"Titre", "Statut", "Début", "Budget"},
		row: func(p models.Project) Row {
			return Row{ID: p.ID, Thumb: deref(p.Image), Cells: []string{
				p.Title, content.ProjectStatusLabel(p.Status), content.FrenchDay(p.StartDate), deref(p.Budget),
			}}
		},
		fields: func(p models.ProjectInput) []Field {
			return []Field{
				{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Value: p.Description, Required: true},
				{Name: "status", Label: "Statut", Type: "select", Value: string(p.Status),
					Options: options(models.ProjectStatuses, func(s string) string {
						return content.ProjectStatusLabel(models.ProjectStatus(s))
					})},
				{Name: "startDate", Label: "Date de début", Type: "date", Value: p.StartDate, Required: true},
				{Name: "endDate", Label: "Date de fin", Type: "date", Value: p.EndDate},
				{Name: "budget", Label: "Budget", Type: "text", Value: p.Budget, Placeholder: "ex. 25 000 000 FCFA"},
			}
		},
		label: func(p models.Project) string { return p.Title },
		pages: []string{"/projets"},
	}
}

func (a *Admin) servicesSection() *section[models.Service, models.ServiceInput] {
	return &section[models.Service, models.ServiceInput]{
		admin: a, key: "services", title: "Services", singular: "service",
		service: a.services.Services, schema: content.ServiceSchema{},
		fileField: content.ServicesConfig.FileField, fileAccept: acceptImages,
		columns: []string{"Titre", "Catégorie"},
		row: func(s models.Service) Row {
			return Row{ID: s.ID, Thumb: deref(s.Image), Cells: []string{
				s.Title, content.ServiceCategoryLabel(s.Category),
			}}
		},
		fields: func(p models.ServiceInput) []Field {
			return []Field{
				{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Value: p.Description, Required: true},
				{Name: "category", Label: "Catégorie", Type: "select", Value: p.Category, Required: true,
					Options: options(models.ServiceCategories, content.ServiceCategoryLabel)},
				{Name: "icon", Label: "Icône", Type: "text", Value: p.Icon, Placeholder: "ex. school"},
			}
		},
		label: func(s models.Service) string { return s.Title },
		pages: []string{"/services"},
	}
}

func (a *Admin) proceduresSection() *section[models.Procedure, models.ProcedureInput] {
	return &section[models.Procedure, models.ProcedureInput]{
		admin: a, key: "procedures", title: "Démarches", singular: "démarche",
		service: a.services.Procedures, schema: content.ProcedureSchema{},
		columns: []string{"Titre", "Catégorie", "Délai", "Documents"},
		row: func(p models.Procedure) Row {
			return Row{ID: p.ID, Cells: []string{
				p.Title, content.ProcedureCategoryLabel(p.Category), content.DelayLabel(p.ProcessingTime),
				strings.Join(p.Docs(), ", "),
			}}
		},
		fields: func(p models.ProcedureInput) []Field {
			return []Field{
				{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true},
				{Name: "description", Label: "Description", Type: "textarea", Value: p.Description, Required: true},
				{Name: "category", Label: "Catégorie", Type: "select", Value: p.Category, Required: true,
					Options: options(models.ProcedureCategories, content.ProcedureCategoryLabel)},
				{Name: "processingTime", Label: "Délai de traitement (jours)", Type: "number",
					Value: strconv.Itoa(p.ProcessingTime), Required: true},
				{Name: "requiredDocs", Label: "Documents requis", Type: "docs", Values: p.RequiredDocs, Required: true},
				{Name: "icon", Label: "Icône", Type: "text", Value: p.Icon},
				{Name: "onlineUrl", Label: "Lien de la démarche en ligne", Type: "text", Value: p.OnlineURL},
			}
		},
		label: func(p models.Procedure) string { return p.Title },
		pages: []string{"/", "/espace-citoyen"},
	}
}

func (a *Admin) investmentsSection() *section[models.Investment, models.InvestmentInput] {
	return &section[models.Investment, models.InvestmentInput]{
		admin: a, key: "investments", title: "Investissements", singular: "investissement",
		service: a.services.Investments, schema: content.InvestmentSchema{},
		fileField: content.InvestmentsConfig.FileField, fileAccept: acceptImages,
		columns: []string{"Titre", "Catégorie", "Montant", "Statut"},
		row: func(i models.Investment) Row {
			return Row{ID: i.ID, Thumb: deref(i.Image), Cells: []string{i.Title, i.Category, i.Amount, i.Status}}
		},
		fields: func(p models.InvestmentInput) []Field {
			return []Field{
				{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true},
				{Name: "category", Label: "Catégorie", Type: "text", Value: p.Category, Required: true,
					Placeholder: "ex. Agriculture"},
				{Name: "shortDescription", Label: "Résumé", Type: "text", Value: p.ShortDescription},
				{Name: "description", Label: "Description", Type: "textarea", Value: p.Description, Required: true},
				{Name: "amount", Label: "Montant", Type: "text", Value: p.Amount, Required: true,
					Placeholder: "ex. 150 millions FCFA"},
				{Name: "startYear", Label: "Année de début", Type: "text", Value: p.StartYear},
				{Name: "endYear", Label: "Année de fin", Type: "text", Value: p.EndYear},
				{Name: "status", Label: "Statut", Type: "select", Value: p.Status, Required: true,
					Options: options(models.InvestmentStatuses, same)},
			}
		},
		label: func(i models.Investment) string { return i.Title },
		pages: []string{"/", "/investissements"},
	}
}

func (a *Admin) gallerySection() *section[models.GalleryItem, models.GalleryInput] {
	return &section[models.GalleryItem, models.GalleryInput]{
		admin: a, key: "gallery", title: "Galerie", singular: "média",
		service: a.services.Gallery, schema: content.GallerySchema{},
		fileField: content.GalleryConfig.FileField, fileAccept: acceptMedia,
		columns: []string{"Titre", "Type"},
		row: func(g models.GalleryItem) Row {
			kind, thumb := "Photo", g.MediaURL
			if g.IsVideo() {
				kind, thumb = "Vidéo", ""
			}
			return Row{ID: g.ID, Thumb: thumb, Cells: []string{g.Title, kind}}
		},
		fields: func(p models.GalleryInput) []Field {
			return []Field{{Name: "title", Label: "Titre", Type: "text", Value: p.Title, Required: true}}
		},
		label: func(g models.GalleryItem) string { return g.Title },
		pages: []string{"/galerie"},
	}
}
