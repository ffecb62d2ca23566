// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"mlomp/internal/models"
)

func strp(s string) *string { return &s }

func TestNewsStoreCRUD(t *testing.T) {
	db := testDB(t)
	s := NewNewsStore(db)
	ctx := context.Background()
	author := testUser(t, db, "store-news-author")

	n := &models.News{Title: "Journée de salubrité", Content: "Corps", Category: "environnement", AuthorID: &author.ID}
	if err := s.Create(ctx, n); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, n.ID) })

	got, err := s.Get(ctx, n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Author == nil || got.Author.Username != "store-news-author" {
		t.Errorf("author not joined: %+v", got.Author)
	}
	if got.Image != nil {
		t.Errorf("image: got %v, want nil", *got.Image)
	}

	got.Title = "Journée de salubrité (reportée)"
	got.Image = strp("http://minio/mlomp-media/news/a.jpg")
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := s.Get(ctx, n.ID)
	if again.Title != got.Title || again.Image == nil {
		t.Errorf("update not persisted: %+v", again)
	}

	if err := s.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := s.Delete(ctx, n.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}

func TestProjectStoreDates(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	p := &models.Project{Title: "Forages", Description: "Eau", Status: models.ProjectPlanned, StartDate: "2025-02-01"}
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, p.ID) })

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.StartDate != "2025-02-01" || got.EndDate != nil || got.Manager != nil {
		t.Errorf("got %+v", got)
	}

	got.EndDate = strp("2025-12-31")
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = s.Get(ctx, p.ID)
	if got.EndDate == nil || *got.EndDate != "2025-12-31" {
		t.Errorf("end date: %v", got.EndDate)
	}
}

func TestServiceStoreListByCategory(t *testing.T) {
	db := testDB(t)
	s := NewServiceStore(db)
	ctx := context.Background()

	svc := &models.Service{Title: "Poste de santé", Description: "Soins", Category: "SANTE"}
	if err := s.Create(ctx, svc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, svc.ID) })

	items, err := s.ListByCategory(ctx, "SANTE")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	found := false
	for _, it := range items {
		if it.Category != "SANTE" {
			t.Errorf("unexpected category %q", it.Category)
		}
		found = found || it.ID == svc.ID
	}
	if !found {
		t.Error("created service missing from category listing")
	}
}

func TestProcedureStoreKeepsRawDocs(t *testing.T) {
	db := testDB(t)
	s := NewProcedureStore(db)
	ctx := context.Background()

	p := &models.Procedure{
		Title: "Acte de décès", Description: "Copie", Category: "ETAT_CIVIL",
		RequiredDocs: models.EncodeRequiredDocs([]string{"Certificat médical"}), ProcessingTime: 2,
	}
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, p.ID) })

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RequiredDocs != `["Certificat médical"]` {
		t.Errorf("required_docs: got %q", got.RequiredDocs)
	}
}

func TestInvestmentAndGalleryStores(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	inv := &models.Investment{Title: "Marché", Category: "Commerce", Description: "Halle", Amount: "80 millions FCFA", Status: "En cours", StartYear: strp("2026")}
	is := NewInvestmentStore(db)
	if err := is.Create(ctx, inv); err != nil {
		t.Fatalf("investment Create: %v", err)
	}
	t.Cleanup(func() { is.Delete(ctx, inv.ID) })
	got, err := is.Get(ctx, inv.ID)
	if err != nil || got.StartYear == nil || *got.StartYear != "2026" || got.EndYear != nil {
		t.Errorf("investment Get: %+v %v", got, err)
	}

	g := &models.GalleryItem{Title: "Fête", MediaURL: "http://minio/mlomp-media/gallery/f.jpg", Type: "image", PublicID: "gallery/f.jpg"}
	gs := NewGalleryStore(db)
	if err := gs.Create(ctx, g); err != nil {
		t.Fatalf("gallery Create: %v", err)
	}
	t.Cleanup(func() { gs.Delete(ctx, g.ID) })
	items, err := gs.List(ctx)
	if err != nil || len(items) == 0 {
		t.Errorf("gallery List: %d items, %v", len(items), err)
	}
}
