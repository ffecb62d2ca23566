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

const dateLayout = "2006-01-02"

// ProjectSchema drives the projects back-office.
type ProjectSchema struct{}

// ValidateProject checks a project payload and returns it trimmed.
func ValidateProject(p models.ProjectInput) (models.ProjectInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.StartDate = dateOnly(strings.TrimSpace(p.StartDate))
	p.EndDate = dateOnly(strings.TrimSpace(p.EndDate))
	p.Budget = strings.TrimSpace(p.Budget)
	if p.Status == "" {
		p.Status = models.ProjectPlanned
	}
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		validation.Field(&p.Description, validation.Required.Error(msgDescription)),
		validation.Field(&p.StartDate,
			validation.Required.Error("La date de début est requise"),
			validation.Date(dateLayout).Error("Date de début invalide")),
		validation.Field(&p.EndDate, validation.Date(dateLayout).Error("Date de fin invalide")),
		validation.Field(&p.Status, validation.In(projectStatuses()...).Error("Statut invalide")),
	)
	if err == nil && p.EndDate != "" && p.EndDate < p.StartDate {
		err = validation.Errors{"endDate": validation.NewError("validation_end_before_start",
			"La date de fin doit suivre la date de début")}
	}
	return p, manager.NewValidationError(err)
}

func projectStatuses() []any {
	out := make([]any, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		out[i] = models.ProjectStatus(s)
	}
	return out
}

// Defaults starts a project as planned.
func (ProjectSchema) Defaults() models.ProjectInput {
	return models.ProjectInput{Status: models.ProjectPlanned}
}

// FromEntity copies the editable fields of a project into a form.
func (ProjectSchema) FromEntity(p models.Project) models.ProjectInput {
	return models.ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   dateOnly(p.StartDate),
		EndDate:     dateOnly(deref(p.EndDate)),
		Budget:      deref(p.Budget),
	}
}

// ID returns the project identifier.
func (ProjectSchema) ID(p models.Project) models.ID { return p.ID }

// MediaURL returns the project image URL, or "".
func (ProjectSchema) MediaURL(p models.Project) string { return deref(p.Image) }

// Decode reads the submitted admin form.
func (ProjectSchema) Decode(form url.Values) models.ProjectInput {
	return models.ProjectInput{
		Title:       field(form, "title"),
		Description: field(form, "description"),
		Status:      models.ProjectStatus(field(form, "status")),
		StartDate:   field(form, "startDate"),
		EndDate:     field(form, "endDate"),
		Budget:      field(form, "budget"),
	}
}

// Validate applies the project rules.
func (ProjectSchema) Validate(_ manager.Mode, p models.ProjectInput, _ bool) (models.ProjectInput, error) {
	return ValidateProject(p)
}

// Messages returns the notices of the project screen.
func (ProjectSchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger les projets",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Projet créé avec succès",
		Updated:       "Projet mis à jour avec succès",
		Deleted:       "Projet supprimé avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer ce projet ?",
	}
}
