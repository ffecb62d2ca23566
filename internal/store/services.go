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

// ServiceStore handles the services table.
type ServiceStore struct {
	db *sql.DB
}

// NewServiceStore creates a ServiceStore.
func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

const serviceColumns = `id, title, description, category, icon, image, created_at, updated_at FROM services`

func scanService(s scanner) (models.Service, error) {
	var svc models.Service
	var icon, image sql.NullString
	if err := s.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Category, &icon, &image,
		&svc.CreatedAt, &svc.UpdatedAt); err != nil {
		return svc, fmt.Errorf("scan service: %w", err)
	}
	svc.Icon, svc.Image = ptr(icon), ptr(image)
	return svc, nil
}

// List returns every service in creation order.
func (s *ServiceStore) List(ctx context.Context) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+serviceColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return collect(rows, scanService)
}

// ListByCategory returns the services of one category.
func (s *ServiceStore) ListByCategory(ctx context.Context, category string) ([]models.Service, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+serviceColumns+` WHERE category = $1 ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("list services by category: %w", err)
	}
	return collect(rows, scanService)
}

// Get returns one service.
func (s *ServiceStore) Get(ctx context.Context, id models.ID) (*models.Service, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	svc, err := scanService(s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` WHERE id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return &svc, nil
}

// Create inserts svc and fills its id and timestamps.
func (s *ServiceStore) Create(ctx context.Context, svc *models.Service) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO services (title, description, category, icon, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, svc.Title, svc.Description, svc.Category, nullable(deref(svc.Icon)), nullable(deref(svc.Image))).
		Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// Update replaces the editable fields of svc.
func (s *ServiceStore) Update(ctx context.Context, svc *models.Service) error {
	key, err := rowID(svc.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE services SET title = $1, description = $2, category = $3, icon = $4, image = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`, svc.Title, svc.Description, svc.Category, nullable(deref(svc.Icon)), nullable(deref(svc.Image)), key).
		Scan(&svc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update service %s: %w", svc.ID, err)
	}
	return nil
}

// Delete removes a service.
func (s *ServiceStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "services", id)
}
