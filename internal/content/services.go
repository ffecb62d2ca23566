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

// ServiceSchema drives the public services back-office.
type ServiceSchema struct{}

// ValidateService checks a service payload and returns it trimmed.
func ValidateService(p models.ServiceInput) (models.ServiceInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.Icon = strings.TrimSpace(p.Icon)
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		validation.Field(&p.Description, validation.Required.Error(msgDescription)),
		validation.Field(&p.Category,
			validation.Required.Error(msgCategory),
			validation.In(anyOf(models.ServiceCategories)...).Error(msgBadCategory)),
	)
	return p, manager.NewValidationError(err)
}

// Defaults preselects the first service category.
func (ServiceSchema) Defaults() models.ServiceInput {
	return models.ServiceInput{Category: models.ServiceCategories[0]}
}

// FromEntity copies the editable fields of a service into a form.
func (ServiceSchema) FromEntity(s models.Service) models.ServiceInput {
	return models.ServiceInput{
		Title:       s.Title,
		Description: s.Description,
		Category:    s.Category,
		Icon:        deref(s.Icon),
	}
}

// ID returns the service identifier.
func (ServiceSchema) ID(s models.Service) models.ID { return s.ID }

// MediaURL returns the service image URL, or "".
func (ServiceSchema) MediaURL(s models.Service) string { return deref(s.Image) }

// Decode reads the submitted admin form.
func (ServiceSchema) Decode(form url.Values) models.ServiceInput {
	return models.ServiceInput{
		Title:       field(form, "title"),
		Description: field(form, "description"),
		Category:    field(form, "category"),
		Icon:        field(form, "icon"),
	}
}

// Validate applies the service rules.
func (ServiceSchema) Validate(_ manager.Mode, p models.ServiceInput, _ bool) (models.ServiceInput, error) {
	return ValidateService(p)
}

// Messages returns the notices of the service screen.
func (ServiceSchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger les services",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Service créé avec succès",
		Updated:       "Service mis à jour avec succès",
		Deleted:       "Service supprimé avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer ce service ?",
	}
}
