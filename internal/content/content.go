// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content binds the six Mlomp collections: the typed API resources
// the portal calls, and the schemas (defaults, validation, form decoding)
// shared by the back-office and the content API.
package content

import (
	"net/url"
	"strconv"
	"strings"

	"mlomp/internal/client"
	"mlomp/internal/models"
)

// Collection configurations, in the order the admin menu lists them.
var (
	NewsConfig        = client.ResourceConfig{Name: "news", Path: "/news", FileField: "image"}
	ProjectsConfig    = client.ResourceConfig{Name: "projects", Path: "/projects", FileField: "image"}
	ServicesConfig    = client.ResourceConfig{Name: "services", Path: "/services", FileField: "image"}
	ProceduresConfig  = client.ResourceConfig{Name: "procedures", Path: "/procedures"}
	InvestmentsConfig = client.ResourceConfig{Name: "investments", Path: "/investments", FileField: "image"}
	GalleryConfig     = client.ResourceConfig{Name: "gallery", Path: "/gallery", FileField: "mediaUrl", AlwaysMultipart: true}
)

// Services groups the API resources of every collection.
type Services struct {
	News        *client.Resource[models.News, models.NewsInput]
	Projects    *client.Resource[models.Project, models.ProjectInput]
	Services    *client.Resource[models.Service, models.ServiceInput]
	Procedures  *client.Resource[models.Procedure, models.ProcedureInput]
	Investments *client.Resource[models.Investment, models.InvestmentInput]
	Gallery     *client.Resource[models.GalleryItem, models.GalleryInput]
	Auth        *client.Auth
}

// NewServices builds every resource on top of c.
func NewServices(c *client.Client) *Services {
	return &Services{
		News:        client.NewResource[models.News, models.NewsInput](c, NewsConfig),
		Projects:    client.NewResource[models.Project, models.ProjectInput](c, ProjectsConfig),
		Services:    client.NewResource[models.Service, models.ServiceInput](c, ServicesConfig),
		Procedures:  client.NewResource[models.Procedure, models.ProcedureInput](c, ProceduresConfig),
		Investments: client.NewResource[models.Investment, models.InvestmentInput](c, InvestmentsConfig),
		Gallery:     client.NewResource[models.GalleryItem, models.GalleryInput](c, GalleryConfig),
		Auth:        client.NewAuth(c),
	}
}

// Shared messages.
const (
	msgSaveFailed   = "Une erreur est survenue lors de l'enregistrement"
	msgDeleteFailed = "Une erreur est survenue lors de la suppression"
	msgTitle        = "Le titre est requis"
	msgDescription  = "La description est requise"
	msgCategory     = "La catégorie est requise"
	msgBadCategory  = "Catégorie invalide"
)

// --- form helpers ---

func field(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

func intField(form url.Values, key string, fallback int) int {
	n, err := strconv.Atoi(field(form, key))
	if err != nil {
		return fallback
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dateOnly keeps the YYYY-MM-DD part of an ISO timestamp.
func dateOnly(s string) string {
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}

func anyOf(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
