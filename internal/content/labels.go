// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"mlomp/internal/models"
)

var newsCategoryLabels = map[string]string{
	"culture":       "Culture",
	"education":     "Éducation",
	"environnement": "Environnement",
	"sante":         "Santé",
	"evenements":    "Événements",
}

var projectStatusLabels = map[models.ProjectStatus]string{
	models.ProjectPlanned:    "Planifié",
	models.ProjectInProgress: "En cours",
	models.ProjectCompleted:  "Terminé",
	models.ProjectOnHold:     "En pause",
	models.ProjectCancelled:  "Annulé",
}

var serviceCategoryLabels = map[string]string{
	"EDUCATION":       "Éducation",
	"SANTE":           "Santé",
	"INFRASTRUCTURES": "Infrastructures",
}

var procedureCategoryLabels = map[string]string{
	"ETAT_CIVIL":   "État civil",
	"IDENTITE":     "Identité",
	"ATTESTATIONS": "Attestations",
	"URBANISME":    "Urbanisme",
	"SOCIAL":       "Social",
}

// NewsCategoryLabel names a news category; unknown or empty categories
// read "Actualité".
func NewsCategoryLabel(c string) string {
	if l, ok := newsCategoryLabels[c]; ok {
		return l
	}
	if c == "" {
		return "Actualité"
	}
	return c
}

// ProjectStatusLabel is the French label of a project status.
func ProjectStatusLabel(s models.ProjectStatus) string {
	if l, ok := projectStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ServiceCategoryLabel is the French label of a service category.
func ServiceCategoryLabel(c string) string {
	if l, ok := serviceCategoryLabels[c]; ok {
		return l
	}
	return c
}

// ProcedureCategoryLabel is the French label of a procedure category.
func ProcedureCategoryLabel(c string) string {
	if l, ok := procedureCategoryLabels[c]; ok {
		return l
	}
	return c
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FrenchDate formats t as "15 juin 2023". The zero time gives "".
func FrenchDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return strconv.Itoa(t.Day()) + " " + frenchMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FrenchDay formats a YYYY-MM-DD date; other input is returned as is.
func FrenchDay(s string) string {
	t, err := time.Parse(time.DateOnly, dateOnly(s))
	if err != nil {
		return s
	}
	return FrenchDate(t)
}

// ExcerptLength is the number of characters kept by Excerpt.
const ExcerptLength = 150

// Excerpt shortens a body to ExcerptLength characters followed by "...".
func Excerpt(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "Aucune description disponible"
	}
	if utf8.RuneCountInString(body) <= ExcerptLength {
		return body
	}
	return string([]rune(body)[:ExcerptLength]) + "..."
}

// ReadTime estimates reading time at a thousand characters per minute,
// never less than one minute.
func ReadTime(body string) string {
	n := (utf8.RuneCountInString(body) + 999) / 1000
	if n < 1 {
		n = 1
	}
	return strconv.Itoa(n) + " min"
}
