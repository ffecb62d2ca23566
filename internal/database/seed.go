// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"mlomp/internal/auth"
	"mlomp/internal/fallback"
	"mlomp/internal/models"
)

// Admin describes the first account created by Seed.
type Admin struct {
	Username string
	Email    string
	Password string
}

// Seed creates the admin account when no user exists. With sample set it
// also loads the built-in commune content into empty collections.
func Seed(ctx context.Context, db *sql.DB, admin Admin, sample bool) error {
	if err := seedAdmin(ctx, db, admin); err != nil {
		return err
	}
	if !sample {
		return nil
	}
	return seedContent(ctx, db)
}

func seedAdmin(ctx context.Context, db *sql.DB, admin Admin) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users present, admin seed skipped")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, lower($2), $3, $4)
	`, admin.Username, admin.Email, hash, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("admin account created", "email", admin.Email, "username", admin.Username)
	return nil
}

// seedContent inserts each built-in dataset whose table is empty, in one
// transaction.
func seedContent(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		table  string
		insert func(context.Context, *sql.Tx) (int, error)
	}{
		{"news", seedNews},
		{"projects", seedProjects},
		{"services", seedServices},
		{"procedures", seedProcedures},
		{"investments", seedInvestments},
	}
	for _, step := range steps {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+step.table).Scan(&count); err != nil {
			return fmt.Errorf("seed check %s: %w", step.table, err)
		}
		if count > 0 {
			continue
		}
		n, err := step.insert(ctx, tx)
		if err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		slog.Info("sample content seeded", "table", step.table, "rows", n)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}
	return nil
}

func seedNews(ctx context.Context, tx *sql.Tx) (int, error) {
	items := fallback.News()
	for _, n := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO news (title, content, category, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
			n.Title, n.Content, n.Category, n.CreatedAt); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedProjects(ctx context.Context, tx *sql.Tx) (int, error) {
	items := fallback.Projects()
	for _, p := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (title, description, status, start_date, end_date) VALUES ($1, $2, $3, $4::text::date, $5::text::date)`,
			p.Title, p.Description, p.Status, p.StartDate, p.EndDate); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedServices(ctx context.Context, tx *sql.Tx) (int, error) {
	items := fallback.Services()
	for _, s := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO services (title, description, category, icon) VALUES ($1, $2, $3, $4)`,
			s.Title, s.Description, s.Category, s.Icon); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedProcedures(ctx context.Context, tx *sql.Tx) (int, error) {
	items := fallback.Procedures()
	for _, p := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO procedures (title, description, icon, required_docs, processing_time, category)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			p.Title, p.Description, p.Icon, p.RequiredDocs, p.ProcessingTime, p.Category); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func seedInvestments(ctx context.Context, tx *sql.Tx) (int, error) {
	items := fallback.Investments()
	for _, i := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO investments (title, category, description, amount, start_year, end_year, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			i.Title, i.Category, i.Description, i.Amount, i.StartYear, i.EndYear, i.Status); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}
