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

// DefaultInvestmentStatus is preselected on new investments.
const DefaultInvestmentStatus = "En recherche de partenaires"

// InvestmentSchema drives the investments back-office.
type InvestmentSchema struct{}

// ValidateInvestment checks an investment payload and returns it trimmed.
func ValidateInvestment(p models.InvestmentInput) (models.InvestmentInput, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	p.ShortDescription = strings.TrimSpace(p.ShortDescription)
	p.Amount = strings.TrimSpace(p.Amount)
	p.StartYear = strings.TrimSpace(p.StartYear)
	p.EndYear = strings.TrimSpace(p.EndYear)
	p.Status = strings.TrimSpace(p.Status)
	year := validation.Match(yearPattern).Error("Année invalide")
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error(msgTitle), validation.RuneLength(0, 255)),
		validation.Field(&p.Category, validation.Required.Error(msgCategory)),
		validation.Field(&p.Description, validation.Required.Error(msgDescription)),
		validation.Field(&p.Amount, validation.Required.Error("Le montant est requis")),
		validation.Field(&p.Status, validation.Required.Error("Le statut est requis")),
		validation.Field(&p.StartYear, year),
		validation.Field(&p.EndYear, year),
	)
	return p, manager.NewValidationError(err)
}

// Defaults sets the status to DefaultInvestmentStatus.
func (InvestmentSchema) Defaults() models.InvestmentInput {
	return models.InvestmentInput{Status: DefaultInvestmentStatus}
}

// FromEntity copies the editable fields of an investment into a form.
func (InvestmentSchema) FromEntity(i models.Investment) models.InvestmentInput {
	return models.InvestmentInput{
		Title:            i.Title,
		Category:         i.Category,
		Description:      i.Description,
		ShortDescription: deref(i.ShortDescription),
		Amount:           i.Amount,
		StartYear:        deref(i.StartYear),
		EndYear:          deref(i.EndYear),
		Status:           i.Status,
	}
}

// ID returns the investment identifier.
func (InvestmentSchema) ID(i models.Investment) models.ID { return i.ID }

// MediaURL returns the investment image URL, or "".
func (InvestmentSchema) MediaURL(i models.Investment) string { return deref(i.Image) }

// Decode reads the submitted admin form.
func (InvestmentSchema) Decode(form url.Values) models.InvestmentInput {
	return models.InvestmentInput{
		Title:            field(form, "title"),
		Category:         field(form, "category"),
		Description:      field(form, "description"),
		ShortDescription: field(form, "shortDescription"),
		Amount:           field(form, "amount"),
		StartYear:        field(form, "startYear"),
		EndYear:          field(form, "endYear"),
		Status:           field(form, "status"),
	}
}

// Validate applies the investment rules.
func (InvestmentSchema) Validate(_ manager.Mode, p models.InvestmentInput, _ bool) (models.InvestmentInput, error) {
	return ValidateInvestment(p)
}

// Messages returns the notices of the investment screen.
func (InvestmentSchema) Messages() manager.Messages {
	return manager.Messages{
		LoadFailed:    "Impossible de charger les investissements",
		SaveFailed:    msgSaveFailed,
		DeleteFailed:  msgDeleteFailed,
		Created:       "Investissement créé avec succès",
		Updated:       "Investissement mis à jour avec succès",
		Deleted:       "Investissement supprimé avec succès",
		ConfirmDelete: "Êtes-vous sûr de vouloir supprimer cet investissement ?",
	}
}

// StatusTone maps an investment status label to a badge tone used by the
// templates ("amber", "blue", "green", "purple" or "gray").
func StatusTone(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "études préliminaires"), strings.Contains(s, "etudes preliminaires"):
		return "amber"
	case strings.Contains(s, "recherche"):
		return "blue"
	case strings.Contains(s, "en cours"):
		return "green"
	case strings.Contains(s, "termin"):
		return "purple"
	}
	return "gray"
}
