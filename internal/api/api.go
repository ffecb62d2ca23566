// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api implements the REST content API the portal consumes:
// account endpoints under /auth and one CRUD collection per content type.
// Every error response is a JSON object {"message": "..."} whose message
// is safe to show to end users.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mlomp/internal/manager"
	"mlomp/internal/middleware"
	"mlomp/internal/models"
	"mlomp/internal/store"
)

// Store is the persistence a collection needs. The SQL stores of package
// store satisfy it.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id models.ID) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id models.ID) error
}

// CategoryStore is implemented by stores that can filter by category.
type CategoryStore[T any] interface {
	ListByCategory(ctx context.Context, category string) ([]T, error)
}

// MediaStore keeps uploaded files. *storage.Store satisfies it.
type MediaStore interface {
	Upload(ctx context.Context, collection, filename, contentType string, data []byte) (string, error)
	DeleteURL(ctx context.Context, rawURL string) error
	KeyFromURL(rawURL string) (string, bool)
}

// UserStore is the account persistence of the auth endpoints.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id models.ID) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

const (
	msgInternal     = "Erreur interne du serveur"
	msgBadRequest   = "Requête invalide"
	msgNoStorage    = "Le stockage des médias n'est pas configuré"
	msgBadMediaType = "Type de fichier non pris en charge"
	msgImageTooBig  = "Image trop grande"
	msgTooLarge     = "Fichier trop volumineux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write json response failed", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// httpError carries a status and a user-facing message.
type httpError struct {
	status  int
	message string
	err     error
}

func (e *httpError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *httpError) Unwrap() error { return e.err }

func badRequest(message string, err error) error {
	return &httpError{status: http.StatusBadRequest, message: message, err: err}
}

// writeError maps err to a response. Unknown errors are logged and
// reported as 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var he *httpError
	var ve *manager.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": ve.Message, "errors": ve.Fields})
	case errors.As(err, &he):
		if he.status >= http.StatusInternalServerError {
			slog.Error("api request failed", "error", err, "path", r.URL.Path, "request_id", middleware.RequestIDFromCtx(r.Context()))
		}
		writeMessage(w, he.status, he.message)
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	default:
		slog.Error("api request failed", "error", err, "method", r.Method, "path", r.URL.Path,
			"request_id", middleware.RequestIDFromCtx(r.Context()))
		writeMessage(w, http.StatusInternalServerError, msgInternal)
	}
}
