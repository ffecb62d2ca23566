// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the content API's database access. Each store
// struct wraps a *sql.DB and exposes typed query methods for one table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mlomp/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrConflict is returned when a unique constraint rejects a write.
var ErrConflict = errors.New("store: conflict")

// rowID converts an entity id to the BIGSERIAL key. Non-numeric ids can
// never match a row.
func rowID(id models.ID) (int64, error) {
	n, err := id.Int64()
	if err != nil {
		return 0, ErrNotFound
	}
	return n, nil
}

// nullable maps "" to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ptr maps SQL NULL to a nil pointer.
func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// owner holds the LEFT JOINed users columns of a manager/author relation.
type owner struct {
	id       sql.NullInt64
	username sql.NullString
}

func (o owner) refs() (*models.ID, *models.ManagerRef) {
	if !o.id.Valid {
		return nil, nil
	}
	id := models.IDFromInt(o.id.Int64)
	return &id, &models.ManagerRef{ID: id, Username: o.username.String}
}

// ownerArg returns the foreign key argument for an optional owner id.
func ownerArg(id *models.ID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	n, err := id.Int64()
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// affected turns a zero-row UPDATE/DELETE into ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// deleteRow removes the row of table with id. table is always a constant.
func deleteRow(ctx context.Context, db *sql.DB, table string, id models.ID) error {
	key, err := rowID(id)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", table, id, err)
	}
	return affected(res)
}
