// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"mlomp/internal/content"
	"mlomp/internal/models"
)

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ownerID(id models.ID) *models.ID { return &id }

// NewsEntity maps news articles.
var NewsEntity = Entity[models.News, models.NewsInput]{
	Name:      "news",
	FileField: content.NewsConfig.FileField,
	NotFound:  "Actualité introuvable",
	Deleted:   "Actualité supprimée avec succès",
	Validate: func(p models.NewsInput, _, _ bool) (models.NewsInput, error) {
		return content.ValidateNews(p)
	},
	Apply: func(n *models.News, p models.NewsInput) {
		n.Title, n.Content, n.Category = p.Title, p.Content, p.Category
	},
	SetOwner: func(n *models.News, id models.ID) { n.AuthorID = ownerID(id) },
	Media:    func(n *models.News) string { return deref(n.Image) },
	SetMedia: func(n *models.News, url, _, _ string) { n.Image = &url },
}

// ProjectEntity maps municipal projects.
var ProjectEntity = Entity[models.Project, models.ProjectInput]{
	Name:      "projects",
	FileField: content.ProjectsConfig.FileField,
	NotFound:  "Projet introuvable",
	Deleted:   "Projet supprimé avec succès",
	Validate: func(p models.ProjectInput, _, _ bool) (models.ProjectInput, error) {
		return content.ValidateProject(p)
	},
	Apply: func(pr *models.Project, p models.ProjectInput) {
		pr.Title, pr.Description, pr.Status = p.Title, p.Description, p.Status
		pr.StartDate = p.StartDate
		pr.EndDate = optional(p.EndDate)
		pr.Budget = optional(p.Budget)
	},
	SetOwner: func(pr *models.Project, id models.ID) { pr.ManagerID = ownerID(id) },
	Media:    func(pr *models.Project) string { return deref(pr.Image) },
	SetMedia: func(pr *models.Project, url, _, _ string) { pr.Image = &url },
}

// ServiceEntity maps public services.
var ServiceEntity = Entity[models.Service, models.ServiceInput]{
	Name:      "services",
	FileField: content.ServicesConfig.FileField,
	NotFound:  "Service introuvable",
	Deleted:   "Service supprimé avec succès",
	Validate: func(p models.ServiceInput, _, _ bool) (models.ServiceInput, error) {
		return content.ValidateService(p)
	},
	Apply: func(s *models.Service, p models.ServiceInput) {
		s.Title, s.Description, s.Category = p.Title, p.Description, p.Category
		s.Icon = optional(p.Icon)
	},
	Media:    func(s *models.Service) string { return deref(s.Image) },
	SetMedia: func(s *models.Service, url, _, _ string) { s.Image = &url },
}

// ProcedureEntity maps administrative procedures. The documents list is
// stored JSON-encoded.
var ProcedureEntity = Entity[models.Procedure, models.ProcedureInput]{
	Name:     "procedures",
	NotFound: "Démarche introuvable",
	Deleted:  "Démarche supprimée avec succès",
	Validate: func(p models.ProcedureInput, _, _ bool) (models.ProcedureInput, error) {
		return content.ValidateProcedure(p)
	},
	Apply: func(pr *models.Procedure, p models.ProcedureInput) {
		pr.Title, pr.Description, pr.Category = p.Title, p.Description, p.Category
		pr.Icon = optional(p.Icon)
		pr.RequiredDocs = models.EncodeRequiredDocs(p.RequiredDocs)
		pr.ProcessingTime = p.ProcessingTime
		pr.OnlineURL = optional(p.OnlineURL)
	},
}

// InvestmentEntity maps investment opportunities.
var InvestmentEntity = Entity[models.Investment, models.InvestmentInput]{
	Name:      "investments",
	FileField: content.InvestmentsConfig.FileField,
	NotFound:  "Investissement introuvable",
	Deleted:   "Investissement supprimé avec succès",
	Validate: func(p models.InvestmentInput, _, _ bool) (models.InvestmentInput, error) {
		return content.ValidateInvestment(p)
	},
	Apply: func(inv *models.Investment, p models.InvestmentInput) {
		inv.Title, inv.Category, inv.Description = p.Title, p.Category, p.Description
		inv.ShortDescription = optional(p.ShortDescription)
		inv.Amount, inv.Status = p.Amount, p.Status
		inv.StartYear = optional(p.StartYear)
		inv.EndYear = optional(p.EndYear)
	},
	SetOwner: func(inv *models.Investment, id models.ID) { inv.ManagerID = ownerID(id) },
	Media:    func(inv *models.Investment) string { return deref(inv.Image) },
	SetMedia: func(inv *models.Investment, url, _, _ string) { inv.Image = &url },
}

// GalleryEntity maps gallery photos and videos.
var GalleryEntity = Entity[models.GalleryItem, models.GalleryInput]{
	Name:       "gallery",
	FileField:  content.GalleryConfig.FileField,
	AllowVideo: true,
	NotFound:   "Média introuvable",
	Deleted:    "Média supprimé avec succès",
	Validate:   content.ValidateGallery,
	Apply:      func(g *models.GalleryItem, p models.GalleryInput) { g.Title = p.Title },
	Media:      func(g *models.GalleryItem) string { return g.MediaURL },
	SetMedia: func(g *models.GalleryItem, url, kind, key string) {
		g.MediaURL, g.Type, g.PublicID = url, kind, key
	},
}
