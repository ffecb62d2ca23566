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

// InvestmentStore handles the investments table.
type InvestmentStore struct {
	db *sql.DB
}

// NewInvestmentStore creates an InvestmentStore.
func NewInvestmentStore(db *sql.DB) *InvestmentStore {
	return &InvestmentStore{db: db}
}

const investmentColumns = `
	i.id, i.title, i.category, i.description, i.short_description, i.amount,
	i.start_year, i.end_year, i.status, i.image, i.manager_id, u.username,
	i.created_at, i.updated_at
	FROM investments i LEFT JOIN users u ON u.id = i.manager_id`

func scanInvestment(s scanner) (models.Investment, error) {
	var inv models.Investment
	var short, start, end, image sql.NullString
	var o owner
	if err := s.Scan(&inv.ID, &inv.Title, &inv.Category, &inv.Description, &short, &inv.Amount,
		&start, &end, &inv.Status, &image, &o.id, &o.username,
		&inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return inv, fmt.Errorf("scan investment: %w", err)
	}
	inv.ShortDescription, inv.StartYear, inv.EndYear, inv.Image = ptr(short), ptr(start), ptr(end), ptr(image)
	inv.ManagerID, inv.Manager = o.refs()
	return inv, nil
}

// List returns every investment in creation order.
func (s *InvestmentStore) List(ctx context.Context) ([]models.Investment, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+investmentColumns+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	return collect(rows, scanInvestment)
}

// Get returns one investment.
func (s *InvestmentStore) Get(ctx context.Context, id models.ID) (*models.Investment, error) {
	key, err := rowID(id)
	if err != nil {
		return nil, err
	}
	inv, err := scanInvestment(s.db.QueryRowContext(ctx, `SELECT`+investmentColumns+` WHERE i.id = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get investment %s: %w", id, err)
	}
	return &inv, nil
}

// Create inserts inv and fills its id and timestamps.
func (s *InvestmentStore) Create(ctx context.Context, inv *models.Investment) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO investments (title, category, description, short_description, amount,
			start_year, end_year, status, image, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, inv.Title, inv.Category, inv.Description, nullable(deref(inv.ShortDescription)), inv.Amount,
		nullable(deref(inv.StartYear)), nullable(deref(inv.EndYear)), inv.Status,
		nullable(deref(inv.Image)), ownerArg(inv.ManagerID)).
		Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create investment: %w", err)
	}
	return nil
}

// Update replaces the editable fields of inv.
func (s *InvestmentStore) Update(ctx context.Context, inv *models.Investment) error {
	key, err := rowID(inv.ID)
	if err != nil {
		return err
	}
	err = s.db.QueryRowContext(ctx, `
		UPDATE investments SET title = $1, category = $2, description = $3, short_description = $4,
			amount = $5, start_year = $6, end_year = $7, status = $8, image = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`, inv.Title, inv.Category, inv.Description, nullable(deref(inv.ShortDescription)), inv.Amount,
		nullable(deref(inv.StartYear)), nullable(deref(inv.EndYear)), inv.Status,
		nullable(deref(inv.Image)), key).Scan(&inv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update investment %s: %w", inv.ID, err)
	}
	return nil
}

// Delete removes an investment.
func (s *InvestmentStore) Delete(ctx context.Context, id models.ID) error {
	return deleteRow(ctx, s.db, "investments", id)
}
