// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"mlomp/internal/auth"
	"mlomp/internal/manager"
	"mlomp/internal/middleware"
	"mlomp/internal/models"
	"mlomp/internal/store"
)

// MinPasswordLength is enforced on registration.
const MinPasswordLength = 8

const (
	msgBadCredentials = "Email ou mot de passe incorrect"
	msgUserNotFound   = "Utilisateur introuvable"
	msgAccountExists  = "Un compte existe déjà avec cet email ou ce nom d'utilisateur"
)

// TokenIssuer signs tokens for authenticated users. *auth.Issuer
// satisfies it.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

// Auth serves the account endpoints.
type Auth struct {
	users  UserStore
	tokens TokenIssuer
}

// NewAuth creates the account handlers.
func NewAuth(users UserStore, tokens TokenIssuer) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Routes mounts the account endpoints. limit throttles the credential
// endpoints and may be nil.
func (a *Auth) Routes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/register", a.Register)
		r.Post("/login", a.Login)
	})
	r.With(middleware.RequireRole()).Get("/profile", a.Profile)
}

// Register handles POST /register. New accounts get the user role; an
// administrator promotes editors.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	in, _, err := bindPayload[credentials](w, r, "")
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	verr := validation.ValidateStruct(&in,
		validation.Field(&in.Username,
			validation.Required.Error("Le nom d'utilisateur est requis"),
			validation.RuneLength(3, 50).Error("Le nom d'utilisateur doit contenir entre 3 et 50 caractères")),
		validation.Field(&in.Email,
			validation.Required.Error("L'email est requis"),
			is.EmailFormat.Error("Adresse email invalide")),
		validation.Field(&in.Password,
			validation.Required.Error("Le mot de passe est requis"),
			validation.RuneLength(MinPasswordLength, 0).Error("Le mot de passe doit contenir au moins 8 caractères")),
	)
	if err := manager.NewValidationError(verr); err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	u := &models.User{Username: in.Username, Email: in.Email, Role: models.RoleUser, PasswordHash: hash}
	if err := a.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			err = &httpError{status: http.StatusConflict, message: msgAccountExists, err: err}
		}
		writeError(w, r, err, msgUserNotFound)
		return
	}
	a.respondToken(w, r, http.StatusCreated, u)
}

// Login handles POST /login.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	in, _, err := bindPayload[credentials](w, r, "")
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email et mot de passe requis")
		return
	}

	u, err := a.users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		writeMessage(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	a.respondToken(w, r, http.StatusOK, u)
}

// Profile handles GET /profile for the bearer of the token.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	u, err := a.users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		// The token outlived its account.
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, msgUserNotFound)
			return
		}
		writeError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (a *Auth) respondToken(w http.ResponseWriter, r *http.Request, status int, u *models.User) {
	token, err := a.tokens.Issue(u)
	if err != nil {
		writeError(w, r, err, msgUserNotFound)
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: u})
}
