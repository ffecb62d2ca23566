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

// ProcedureStore handles the procedures table. required_docs holds the
// JSON-encoded document list exactly as clients receive it.
type ProcedureStore struct {
	db *sql.DB
}

// NewProcedureStore creates a ProcedureStore.
func NewProcedureStore(db *sql.DB) *ProcedureStore {
	return &ProcedureStore{db: db}
}

const procedureColumns = `id, title, description, icon, required_docs, processing_time, category,
	online_url, created_at, updated_at FROM procedures`

func scanProcedure(s scanner) (models.Procedure, error) {
	var p models.Procedure
	var icon, online sql.NullString
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &icon, &p.RequiredDocs, &p.ProcessingTime,
		&p.Category, &online, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return p, fmt.Errorf("scan procedure: %w", err)
	}
	p.Icon, p.OnlineURL = ptr(icon), ptr(online)
	return p, nil
}

// List returns every procedure in creation order.
func (s *ProcedureStore) List(ctx context.Context) ([]models.Procedure, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+procedureColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list procedures: %w", err)
	}
	return collect(rows, scanProcedure)
}

// ListByCategory returns the procedures of one category.
func (s *ProcedureStore) ListByCategory(ctx context.Context, category string) ([]models.Procedure, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+procedureColumns+` WHERE category = $1 ORDER BY id`, category)
	if err != nil {
		return nil, fmt.Errorf("list procedures by category: %w", err)
	}
	return collect(rows, scanProcedure)
}

// Get returns one procedure.
func (s *ProcedureStore) Get(ctx context.Context, id models.ID) (*models.Procedure, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProcedure(s.db.QueryRowContext(ctx, `SELECT `+procedureColumns+` WHERE id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get procedure %s: %w", id, err)
	}
	return &p, nil
}

// Create inserts p and fills its id and timestamps.
func (s *ProcedureStore) Create(ctx context.Context, p *models.Procedure) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO procedures (title, description, icon, required_docs, processing_time, category, online_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, nullable(deref(p.Icon)), p.RequiredDocs, p.ProcessingTime,
		p.Category, nullable(deref(p.OnlineURL))).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create procedure: %w", err)
	}
	return nil
}

// Update replaces the editable fields of p.
func (s *ProcedureStore) Update(ctx context.Context, p *models.Procedure) error {
	key, err := rowID(p.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE procedures SET title = $1, description = $2, icon = $3, required_docs = $4,
			processing_time = $5, category = $6, online_url = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`, p.Title, p.Description, nullable(deref(p.Icon)), p.RequiredDocs, p.ProcessingTime,
		p.Category, nullable(deref(p.OnlineURL)), key).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update procedure %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes a procedure.
func (s *ProcedureStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "procedures", id)
}
