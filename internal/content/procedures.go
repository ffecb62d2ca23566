// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"mlomp/internal/manager"
	"mlomp/internal/models"
)

const msgDelay = "Le délai doit être d'au moins 1 jour"

// Form actions handled by ProcedureSchema.Revise.
const (
	ActionAddDoc    = "add_doc"
	ActionRemoveDoc = "remove_doc:" // followed by the row index
)

// ProcedureSchema drives the administrative procedures back-office.
type ProcedureSchema struct{}

// ValidateProcedure checks a procedure payload. Blank document rows are
// dropped; at least one document must remain.
func ValidateProcedure(p models.ProcedureInput) (models.ProcedureInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.Icon = strings.TrimSpace(p.Icon)
	p.OnlineURL = strings.TrimSpace(p.OnlineURL)
	p.RequiredDocs = nonBlank(p.RequiredDocs)
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		validation.Field(&p.Description, validation.Required.Error(msgDescription)),
		validation.Field(&p.Category,
			validation.Required.Error(msgCategory),
			validation.In(anyOf(models.ProcedureCategories)...).Error(msgBadCategory)),
		validation.Field(&p.RequiredDocs, validation.Required.Error("Au moins un document requis doit être renseigné")),
		validation.Field(&p.ProcessingTime,
			validation.Required.Error(msgDelay),
			validation.Min(1).Error(msgDelay)),
	)
	return p, manager.NewValidationError(err)
}

func nonBlank(docs []string) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Defaults opens the form on état civil with one empty document row.
func (ProcedureSchema) Defaults() models.ProcedureInput {
	return models.ProcedureInput{
		Category:       "ETAT_CIVIL",
		ProcessingTime: 1,
		RequiredDocs:   []string{""},
	}
}

// FromEntity decodes the stored documents list; a malformed value becomes
// a single row holding the raw text.
func (ProcedureSchema) FromEntity(p models.Procedure) models.ProcedureInput {
	docs := p.Docs()
	if len(docs) == 0 {
		docs = []string{""}
	}
	return models.ProcedureInput{
		Title:          p.Title,
		Description:    p.Description,
		Icon:           deref(p.Icon),
		RequiredDocs:   docs,
		ProcessingTime: p.ProcessingTime,
		Category:       p.Category,
		OnlineURL:      deref(p.OnlineURL),
	}
}

// ID returns the procedure identifier.
func (ProcedureSchema) ID(p models.Procedure) models.ID { return p.ID }

// MediaURL is always "": procedures carry no media.
func (ProcedureSchema) MediaURL(models.Procedure) string { return "" }

// Decode reads the submitted admin form.
func (ProcedureSchema) Decode(form url.Values) models.ProcedureInput {
	docs := form["requiredDocs"]
	if len(docs) == 0 {
		docs = []string{""}
	}
	return models.ProcedureInput{
		Title:          field(form, "title"),
		Description:    field(form, "description"),
		Icon:           field(form, "icon"),
		RequiredDocs:   append([]string(nil), docs...),
		ProcessingTime: intField(form, "processingTime", 1),
		Category:       field(form, "category"),
		OnlineURL:      field(form, "onlineUrl"),
	}
}

// Validate applies the procedure rules.
func (ProcedureSchema) Validate(_ manager.Mode, p models.ProcedureInput, _ bool) (models.ProcedureInput, error) {
	return ValidateProcedure(p)
}

// Revise adds a blank document row or removes one. The last row is never
// removed.
func (ProcedureSchema) Revise(p models.ProcedureInput, action string) (models.ProcedureInput, bool) {
	switch {
	case action == ActionAddDoc:
		p.RequiredDocs = append(append([]string(nil), p.RequiredDocs...), "")
		return p, true
	case strings.HasPrefix(action, ActionRemoveDoc):
		i, err := strconv.Atoi(strings.TrimPrefix(action, ActionRemoveDoc))
		if err != nil || i < 0 || i >= len(p.RequiredDocs) {
			return p, true
		}
		if len(p.RequiredDocs) <= 1 {
			return p, true
		}
		docs := make([]string, 0, len(p.RequiredDocs)-1)
		docs = append(docs, p.RequiredDocs[:i]...)
		p.RequiredDocs = append(docs, p.RequiredDocs[i+1:]...)
		return p, true
	}
	return p, false
}

// Messages returns the notices of the procedure screen.
func (ProcedureSchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger les démarches",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Démarche créée avec succès",
		Updated:       "Démarche mise à jour avec succès",
		Deleted:       "Démarche supprimée avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer cette démarche ?",
	}
}

// DelayLabel renders a processing time in days: "1 jour", "3 jours".
func DelayLabel(days int) string {
	if days <= 1 {
		return strconv.Itoa(days) + " jour"
	}
	return strconv.Itoa(days) + " jours"
}
