// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mlomp/internal/models"
)

// GalleryStore handles the gallery table.
type GalleryStore struct {
	db *sql.DB
}

// NewGalleryStore creates a GalleryStore.
func NewGalleryStore(db *sql.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

const galleryColumns = `id, title, media_url, type, public_id, created_at, updated_at FROM gallery`

func scanGallery(s scanner) (models.GalleryItem, error) {
	var g models.GalleryItem
	if err := s.Scan(&g.ID, &g.Title, &g.MediaURL, &g.Type, &g.PublicID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return g, fmt.Errorf("scan gallery item: %w", err)
	}
	return g, nil
}

// List returns every gallery item, newest first.
func (s *GalleryStore) List(ctx context.Context) ([]models.GalleryItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+galleryColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return collect(rows, scanGallery)
}

// Get returns one gallery item.
func (s *GalleryStore) Get(ctx context.Context, id models.ID) (*models.GalleryItem, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	g, err := scanGallery(s.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` WHERE id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery item %s: %w", id, err)
	}
	return &g, nil
}

// Create inserts g and fills its id and timestamps.
func (s *GalleryStore) Create(ctx context.Context, g *models.GalleryItem) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO gallery (title, media_url, type, public_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, g.Title, g.MediaURL, g.Type, g.PublicID).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create gallery item: %w", err)
	}
	return nil
}

// Update replaces the title and, when changed, the media of g.
func (s *GalleryStore) Update(ctx context.Context, g *models.GalleryItem) error {
	key, err := rowID(g.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE gallery SET title = $1, media_url = $2, type = $3, public_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, g.Title, g.MediaURL, g.Type, g.PublicID, key).Scan(&g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update gallery item %s: %w", g.ID, err)
	}
	return nil
}

// Delete removes a gallery item.
func (s *GalleryStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "gallery", id)
}
