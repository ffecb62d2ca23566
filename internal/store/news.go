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

// NewsStore handles the news table.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a NewsStore.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

const newsColumns = `
	n.id, n.title, n.content, n.category, n.image, n.author_id, u.username,
	n.created_at, n.updated_at
	FROM news n LEFT JOIN users u ON u.id = n.author_id`

func scanNews(s scanner) (models.News, error) {
	var n models.News
	var image sql.NullString
	var o owner
	if err := s.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &image, &o.id, &o.username,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		return n, fmt.Errorf("scan news: %w", err)
	}
	n.Image = ptr(image)
	n.AuthorID, n.Author = o.refs()
	return n, nil
}

// List returns every news item, newest first.
func (s *NewsStore) List(ctx context.Context) ([]models.News, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+newsColumns+` ORDER BY n.created_at DESC, n.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	return collect(rows, scanNews)
}

// Get returns one news item.
func (s *NewsStore) Get(ctx context.Context, id models.ID) (*models.News, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	n, err := scanNews(s.db.QueryRowContext(ctx, `SELECT`+newsColumns+` WHERE n.id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get news %s: %w", id, err)
	}
	return &n, nil
}

// Create inserts n and fills its id and timestamps.
func (s *NewsStore) Create(ctx context.Context, n *models.News) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO news (title, content, category, image, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, n.Title, n.Content, n.Category, nullable(deref(n.Image)), ownerArg(n.AuthorID)).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// Update replaces the editable fields of n.
func (s *NewsStore) Update(ctx context.Context, n *models.News) error {
	key, err := rowID(n.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE news SET title = $1, content = $2, category = $3, image = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, n.Title, n.Content, n.Category, nullable(deref(n.Image)), key).Scan(&n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update news %s: %w", n.ID, err)
	}
	return nil
}

// Delete removes a news item.
func (s *NewsStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "news", id)
}
