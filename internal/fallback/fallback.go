// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fallback holds the commune's built-in content. Public pages
// render it when the content API cannot be reached, and the seed command
// loads it into an empty database.
package fallback

import (
	"slices"
	"time"

	"mlomp/internal/models"
)

// Author is shown on built-in news items.
const Author = "Mairie de Mlomp"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func str(s string) *string { return &s }

var news = []models.News{
	{
		ID:    models.IDFromInt(1),
		Title: "Inauguration du nouveau centre culturel de Mlomp",
		Content: `Le nouveau centre culturel de Mlomp a été inauguré hier en présence des autorités locales et des habitants de la commune.

Cet événement marque un tournant important dans le développement culturel de notre région. Le centre, fruit de plusieurs années de planification et d'investissement, offrira un espace moderne pour les arts, les spectacles et les rencontres communautaires.

### Un projet structurant pour la commune

Le centre culturel comprend plusieurs espaces :

- Une grande salle de spectacle de 300 places
- Des salles d'exposition pour les artistes locaux
- Un espace multimédia pour les formations et les activités éducatives
- Une bibliothèque moderne avec un fonds documentaire riche

### Impact sur la communauté

Ce nouveau lieu vise à :

- Promouvoir la culture locale et traditionnelle
- Offrir des opportunités de formation artistique
- Créer un espace de rencontre et d'échange pour les habitants
- Attirer des événements culturels régionaux et nationaux

L'inauguration a été saluée par les autorités locales comme un pas significatif vers le développement culturel et social de Mlomp.`,
		Category:  "culture",
		Author:    &models.ManagerRef{Username: Author},
		CreatedAt: day(2023, time.June, 15),
		UpdatedAt: day(2023, time.June, 15),
	},
	{
		ID:    models.IDFromInt(2),
		Title: "Lancement du programme de reforestation communautaire",
		Content: "Un nouveau programme de reforestation communautaire a été lancé dans la commune de Mlomp pour lutter contre la déforestation.\n\n" +
			"Les habitants, les écoles et les associations de jeunes sont invités à participer aux journées de plantation organisées dans chaque village.",
		Category:  "environnement",
		Author:    &models.ManagerRef{Username: "Service Environnement"},
		CreatedAt: day(2023, time.May, 2),
		UpdatedAt: day(2023, time.May, 2),
	},
	{
		ID:    models.IDFromInt(3),
		Title: "Rénovation des infrastructures scolaires de la commune",
		Content: "La commune a entamé des travaux de rénovation dans plusieurs écoles pour améliorer les conditions d'apprentissage des élèves.\n\n" +
			"Les travaux portent sur les toitures, les salles de classe et les blocs sanitaires de quatre écoles élémentaires.",
		Category:  "education",
		Author:    &models.ManagerRef{Username: "Service Éducation"},
		CreatedAt: day(2023, time.April, 18),
		UpdatedAt: day(2023, time.April, 18),
	},
}

var projects = []models.Project{
	{
		ID:          models.IDFromInt(1),
		Title:       "Accès à l'eau potable",
		Description: "Construction de 5 nouveaux forages et réhabilitation du réseau d'adduction d'eau dans les villages de la commune pour garantir un accès équitable à l'eau potable.",
		Status:      models.ProjectInProgress,
		StartDate:   "2023-01-01",
		EndDate:     str("2024-12-31"),
	},
	{
		ID:          models.IDFromInt(2),
		Title:       "Électrification rurale",
		Description: "Extension du réseau électrique et installation de lampadaires solaires dans 12 villages pour améliorer le cadre de vie et favoriser le développement économique local.",
		Status:      models.ProjectInProgress,
		StartDate:   "2023-01-01",
		EndDate:     str("2025-12-31"),
	},
	{
		ID:          models.IDFromInt(3),
		Title:       "Désenclavement routier",
		Description: "Réhabilitation de 35 km de pistes rurales et construction d'un pont pour faciliter la circulation des personnes et des biens entre les villages.",
		Status:      models.ProjectInProgress,
		StartDate:   "2022-01-01",
		EndDate:     str("2024-12-31"),
	},
}

var services = []models.Service{
	{
		ID:          models.IDFromInt(1),
		Title:       "Services Éducatifs",
		Description: "Accès à des établissements scolaires de qualité pour tous les enfants de la commune. La commune compte sept infrastructures éducatives : deux structures préscolaires, quatre écoles élémentaires et un collège d'enseignement moyen.",
		Category:    "EDUCATION",
		Icon:        str("school"),
	},
	{
		ID:          models.IDFromInt(2),
		Title:       "Services de Santé",
		Description: "Services médicaux et programmes de santé adaptés aux besoins de la population : centre de santé, postes de santé dans les villages, maternité, pharmacie et campagnes de prévention.",
		Category:    "SANTE",
		Icon:        str("heart"),
	},
	{
		ID:          models.IDFromInt(3),
		Title:       "Infrastructures",
		Description: "Entretien des routes et pistes, accès à l'eau potable, électrification et gestion des déchets pour améliorer le cadre de vie des habitants.",
		Category:    "INFRASTRUCTURES",
		Icon:        str("building"),
	},
}

var procedures = []models.Procedure{
	{
		ID:             models.IDFromInt(1),
		Title:          "Acte de naissance",
		Description:    "Demande de copie ou d'extrait d'acte de naissance",
		Icon:           str("file-text"),
		RequiredDocs:   models.EncodeRequiredDocs([]string{"Pièce d'identité", "Formulaire de demande"}),
		ProcessingTime: 3,
		Category:       "ETAT_CIVIL",
	},
	{
		ID:             models.IDFromInt(2),
		Title:          "Carte d'identité",
		Description:    "Demande ou renouvellement de carte d'identité nationale",
		Icon:           str("user-check"),
		RequiredDocs:   models.EncodeRequiredDocs([]string{"Acte de naissance", "Photos d'identité", "Certificat de résidence"}),
		ProcessingTime: 15,
		Category:       "IDENTITE",
	},
	{
		ID:             models.IDFromInt(3),
		Title:          "Certificat de résidence",
		Description:    "Attestation officielle de domicile",
		Icon:           str("map-pin"),
		RequiredDocs:   models.EncodeRequiredDocs([]string{"Pièce d'identité", "Justificatif de domicile"}),
		ProcessingTime: 1,
		Category:       "ATTESTATIONS",
	},
	{
		ID:             models.IDFromInt(4),
		Title:          "Acte de mariage",
		Description:    "Demande de copie ou d'extrait d'acte de mariage",
		Icon:           str("file-check"),
		RequiredDocs:   models.EncodeRequiredDocs([]string{"Pièces d'identité des époux", "Livret de famille"}),
		ProcessingTime: 2,
		Category:       "ETAT_CIVIL",
	},
}

var investments = []models.Investment{
	{
		ID:          models.IDFromInt(1),
		Title:       "Extension du port de pêche",
		Category:    "Infrastructures",
		Description: "Modernisation et extension des infrastructures portuaires pour soutenir la filière pêche locale.",
		Amount:      "350 millions FCFA",
		StartYear:   str("2023"),
		EndYear:     str("2025"),
		Status:      "En recherche de partenaires",
	},
	{
		ID:          models.IDFromInt(2),
		Title:       "Complexe agro-industriel",
		Category:    "Agriculture",
		Description: "Création d'un complexe de transformation des produits agricoles locaux pour la création de valeur ajoutée.",
		Amount:      "500 millions FCFA",
		StartYear:   str("2024"),
		EndYear:     str("2026"),
		Status:      "Études préliminaires",
	},
	{
		ID:          models.IDFromInt(3),
		Title:       "Éco-lodge touristique",
		Category:    "Tourisme",
		Description: "Développement d'un complexe touristique écologique mettant en valeur les ressources naturelles et culturelles.",
		Amount:      "250 millions FCFA",
		StartYear:   str("2023"),
		EndYear:     str("2024"),
		Status:      "Recherche d'investisseurs",
	},
}

// News returns the built-in news items, newest first.
func News() []models.News { return slices.Clone(news) }

// Projects returns the built-in current projects.
func Projects() []models.Project { return slices.Clone(projects) }

// Services returns the built-in public services.
func Services() []models.Service { return slices.Clone(services) }

// Procedures returns the built-in administrative procedures.
func Procedures() []models.Procedure { return slices.Clone(procedures) }

// Investments returns the built-in investment opportunities.
func Investments() []models.Investment { return slices.Clone(investments) }

// Gallery returns the built-in gallery. The commune ships none; the
// gallery page shows its notice over an empty grid instead.
func Gallery() []models.GalleryItem { return nil }

// Find returns the item of items whose id matches.
func Find[T any](items []T, id models.ID, idOf func(*T) models.ID) (T, bool) {
	for i := range items {
		if idOf(&items[i]) == id {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}
