// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mlomp/internal/manager"
	"mlomp/internal/models"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// GallerySchema drives the photo and video gallery back-office.
type GallerySchema struct{}

// ValidateGallery checks a gallery payload. A media file is required when
// the item is created.
func ValidateGallery(p models.GalleryInput, creating, hasFile bool) (models.GalleryInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	err := validation.Errors{
		"title": validation.Validate(p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		"mediaUrl": validation.Validate(hasFile,
			validation.When(creating, validation.Required.Error("Veuillez sélectionner une image ou une vidéo"))),
	}.Filter()
	return p, manager.NewValidationError(err)
}

// Defaults returns an empty gallery form.
func (GallerySchema) Defaults() models.GalleryInput { return models.GalleryInput{} }

// FromEntity copies the editable fields of a gallery item into a form.
func (GallerySchema) FromEntity(g models.GalleryItem) models.GalleryInput {
	return models.GalleryInput{Title: g.Title}
}

// ID returns the gallery item identifier.
func (GallerySchema) ID(g models.GalleryItem) models.ID { return g.ID }

// MediaURL returns the image to preview; videos have none.
func (GallerySchema) MediaURL(g models.GalleryItem) string {
	if g.IsVideo() {
		return ""
	}
	return g.MediaURL
}

// Decode reads the submitted admin form.
func (GallerySchema) Decode(form url.Values) models.GalleryInput {
	return models.GalleryInput{Title: field(form, "title")}
}

// Validate applies the gallery item rules.
func (GallerySchema) Validate(mode manager.Mode, p models.GalleryInput, hasFile bool) (models.GalleryInput, error) {
	return ValidateGallery(p, mode == manager.ModeAdd, hasFile)
}

// Messages returns the notices of the gallery item screen.
func (GallerySchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger la galerie",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Média ajouté avec succès",
		Updated:       "Média mis à jour avec succès",
		Deleted:       "Média supprimé avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer ce média ?",
	}
}
