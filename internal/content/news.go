// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mlomp/internal/manager"
	"mlomp/internal/models"
)

// NewsSchema drives the news back-office.
type NewsSchema struct{}

// ValidateNews checks a news payload and returns it trimmed.
func ValidateNews(p models.NewsInput) (models.NewsInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	p.Category = strings.TrimSpace(p.Category)
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		validation.Field(&p.Content, validation.Required.Error("Le contenu est requis")),
		validation.Field(&p.Category, validation.In(anyOf(models.NewsCategories)...).Error(msgBadCategory)),
	)
	return p, manager.NewValidationError(err)
}

// Defaults returns an empty news form.
func (NewsSchema) Defaults() models.NewsInput { return models.NewsInput{} }

// FromEntity copies the editable fields of a news item into a form.
func (NewsSchema) FromEntity(n models.News) models.NewsInput {
	return models.NewsInput{Title: n.Title, Content: n.Content, Category: n.Category}
}

// ID returns the news item identifier.
func (NewsSchema) ID(n models.News) models.ID { return n.ID }

// MediaURL returns the cover image URL, or "".
func (NewsSchema) MediaURL(n models.News) string { return deref(n.Image) }

// Decode reads the submitted admin form.
func (NewsSchema) Decode(form url.Values) models.NewsInput {
	return models.NewsInput{
		Title:    field(form, "title"),
		Content:  field(form, "content"),
		Category: field(form, "category"),
	}
}

// Validate applies the news item rules.
func (NewsSchema) Validate(_ manager.Mode, p models.NewsInput, _ bool) (models.NewsInput, error) {
	return ValidateNews(p)
}

// Messages returns the notices of the news item screen.
func (NewsSchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger les actualités",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Actualité créée avec succès",
		Updated:       "Actualité mise à jour avec succès",
		Deleted:       "Actualité supprimée avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer cette actualité ?",
	}
}
