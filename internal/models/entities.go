// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content records exchanged between the portal
// and the content API. Entity types mirror the API's JSON documents;
// the matching *Input types are the editable fields sent on create/update.
package models

import "time"

// ManagerRef is the read-only user relation the API denormalizes onto
// projects, investments (manager) and news (author).
type ManagerRef struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
}

// --- News ---

// NewsCategories lists the accepted news categories.
var NewsCategories = []string{"culture", "education", "environnement", "sante", "evenements"}

// News is a published article about commune life.
type News struct {
	ID        ID          `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Category  string      `json:"category"`
	Image     *string     `json:"image"`
	AuthorID  *ID         `json:"authorId,omitempty"`
	Author    *ManagerRef `json:"author,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewsInput holds the editable fields of a news item.
type NewsInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// --- Projects ---

// ProjectStatus is the lifecycle state of a municipal project.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// ProjectStatuses lists every status the API accepts.
var ProjectStatuses = []string{
	string(ProjectPlanned), string(ProjectInProgress), string(ProjectCompleted),
	string(ProjectOnHold), string(ProjectCancelled),
}

// Project is a municipal project (construction, programme, ...).
type Project struct {
	ID          ID            `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"startDate"`
	EndDate     *string       `json:"endDate"`
	Budget      *string       `json:"budget"`
	Image       *string       `json:"image"`
	ManagerID   *ID           `json:"managerId,omitempty"`
	Manager     *ManagerRef   `json:"manager,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProjectInput holds the editable fields of a project.
type ProjectInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	Budget      string        `json:"budget,omitempty"`
}

// --- Services ---

// ServiceCategories lists the public service families.
var ServiceCategories = []string{"EDUCATION", "SANTE", "INFRASTRUCTURES"}

// Service is a public service offered by the commune.
type Service struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Icon        *string   `json:"icon"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceInput holds the editable fields of a service.
type ServiceInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon,omitempty"`
}

// --- Procedures ---

// ProcedureCategories lists the administrative procedure families.
var ProcedureCategories = []string{"ETAT_CIVIL", "IDENTITE", "ATTESTATIONS", "URBANISME", "SOCIAL"}

// Procedure is an administrative procedure guide. RequiredDocs is kept in
// the raw form the API stores (a JSON-encoded string array); use Docs to
// read it.
type Procedure struct {
	ID             ID        `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Icon           *string   `json:"icon"`
	RequiredDocs   string    `json:"requiredDocs"`
	ProcessingTime int       `json:"processingTime"`
	Category       string    `json:"category"`
	OnlineURL      *string   `json:"onlineUrl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Docs decodes the required documents list.
func (p *Procedure) Docs() []string {
	return DecodeRequiredDocs(p.RequiredDocs)
}

// ProcedureInput holds the editable fields of a procedure. RequiredDocs
// travels as a real array; the API encodes it for storage.
type ProcedureInput struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Icon           string   `json:"icon,omitempty"`
	RequiredDocs   []string `json:"requiredDocs"`
	ProcessingTime int      `json:"processingTime"`
	Category       string   `json:"category"`
	OnlineURL      string   `json:"onlineUrl,omitempty"`
}

// --- Investments ---

// InvestmentStatuses are the labels used by the commune's investment office.
var InvestmentStatuses = []string{
	"En recherche de partenaires",
	"Études préliminaires",
	"Recherche d'investisseurs",
	"En cours",
	"Terminé",
}

// Investment is an investment opportunity presented to partners.
type Investment struct {
	ID               ID          `json:"id"`
	Title            string      `json:"title"`
	Category         string      `json:"category"`
	Description      string      `json:"description"`
	ShortDescription *string     `json:"shortDescription"`
	Amount           string      `json:"amount"`
	StartYear        *string     `json:"startYear"`
	EndYear          *string     `json:"endYear"`
	Status           string      `json:"status"`
	Image            *string     `json:"image"`
	ManagerID        *ID         `json:"managerId,omitempty"`
	Manager          *ManagerRef `json:"manager,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// InvestmentInput holds the editable fields of an investment.
type InvestmentInput struct {
	Title            string `json:"title"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Amount           string `json:"amount"`
	StartYear        string `json:"startYear,omitempty"`
	EndYear          string `json:"endYear,omitempty"`
	Status           string `json:"status"`
}

// --- Gallery ---

// GalleryItem is a photo or video of the commune.
type GalleryItem struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	MediaURL  string    `json:"mediaUrl"`
	Type      string    `json:"type"`
	PublicID  string    `json:"publicId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsVideo reports whether the item should be rendered with a video player.
func (g *GalleryItem) IsVideo() bool {
	return g.Type == "video"
}

// GalleryInput holds the editable fields of a gallery item.
type GalleryInput struct {
	Title string `json:"title"`
}
