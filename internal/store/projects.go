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

// ProjectStore handles the projects table.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Dates travel as YYYY-MM-DD text; the casts keep pgx from choosing a
// date codec for Go strings.
const projectColumns = `
	p.id, p.title, p.description, p.status, p.start_date::text, p.end_date::text,
	p.budget, p.image, p.manager_id, u.username, p.created_at, p.updated_at
	FROM projects p LEFT JOIN users u ON u.id = p.manager_id`

func scanProject(s scanner) (models.Project, error) {
	var p models.Project
	var end, budget, image sql.NullString
	var o owner
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.StartDate, &end,
		&budget, &image, &o.id, &o.username, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, fmt.Errorf("scan project: %w", err)
	}
	p.EndDate, p.Budget, p.Image = ptr(end), ptr(budget), ptr(image)
	p.ManagerID, p.Manager = o.refs()
	return p, nil
}

// List returns every project, most recently started first.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+projectColumns+` ORDER BY p.start_date DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return collect(rows, scanProject)
}

// Get returns one project.
func (s *ProjectStore) Get(ctx context.Context, id models.ID) (*models.Project, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProject(s.db.QueryRowContext(ctx, `SELECT`+projectColumns+` WHERE p.id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

// Create inserts p and fills its id and timestamps.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, description, status, start_date, end_date, budget, image, manager_id)
		VALUES ($1, $2, $3, $4::text::date, $5::text::date, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Status, p.StartDate, nullable(deref(p.EndDate)),
		nullable(deref(p.Budget)), nullable(deref(p.Image)), ownerArg(p.ManagerID)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update replaces the editable fields of p.
func (s *ProjectStore) Update(ctx context.Context, p *models.Project) error {
	key, err := rowID(p.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE projects SET title = $1, description = $2, status = $3,
			start_date = $4::text::date, end_date = $5::text::date, budget = $6, image = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`, p.Title, p.Description, p.Status, p.StartDate, nullable(deref(p.EndDate)),
		nullable(deref(p.Budget)), nullable(deref(p.Image)), key).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes a project.
func (s *ProjectStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "projects", id)
}
