// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mlomp/internal/client"
	"mlomp/internal/render"
	"mlomp/internal/session"
)

// AuthAPI is the account surface of the content API. *client.Auth
// satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
	Register(ctx context.Context, in client.RegisterRequest) (*client.LoginResponse, error)
}

// SessionManager creates and destroys back-office sessions.
// *session.Store satisfies it.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions SessionManager
	api      AuthAPI
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions SessionManager, api AuthAPI) *Auth {
	return &Auth{renderer: renderer, sessions: sessions, api: api}
}

// AuthForm is the data of the login and register pages.
type AuthForm struct {
	Username string
	Email    string
	Next     string
	Error    string
	Notice   string
}

const adminHome = "/admin"

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()) != nil {
		http.Redirect(w, r, adminHome, http.StatusSeeOther)
		return
	}
	form := AuthForm{Next: safeNext(r.URL.Query().Get("next"))}
	if r.URL.Query().Get("registered") == "1" {
		form.Notice = "Compte créé. Vous pouvez maintenant vous connecter."
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Connexion", Data: form})
}

// LoginSubmit exchanges the credentials for an API token and opens a
// session holding it.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := AuthForm{
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Next:  safeNext(r.PostFormValue("next")),
	}
	password := r.PostFormValue("password")
	if form.Email == "" || password == "" {
		form.Error = "Veuillez saisir votre email et votre mot de passe"
		a.renderer.PageStatus(w, r, http.StatusUnprocessableEntity, "login", &render.PageData{Title: "Connexion", Data: form})
		return
	}

	resp, err := a.api.Login(r.Context(), form.Email, password)
	if err != nil {
		slog.Info("login failed", "email", form.Email, "error", err)
		form.Error = client.Message(err)
		a.renderer.PageStatus(w, r, failureStatus(err), "login", &render.PageData{Title: "Connexion", Data: form})
		return
	}

	if err := a.startSession(r.Context(), w, resp); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	target := form.Next
	if target == "" {
		target = adminHome
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegisterPage renders the account creation form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{Title: "Inscription", Data: AuthForm{}})
}

// RegisterSubmit creates an account. When the API returns a token the
// user is signed in directly; otherwise they are sent to the login page.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	form := AuthForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	switch {
	case form.Username == "" || form.Email == "" || password == "":
		form.Error = "Veuillez remplir tous les champs obligatoires"
	case password != r.PostFormValue("confirm"):
		form.Error = "Les mots de passe ne correspondent pas"
	}
	if form.Error != "" {
		a.renderer.PageStatus(w, r, http.StatusUnprocessableEntity, "register", &render.PageData{Title: "Inscription", Data: form})
		return
	}

	resp, err := a.api.Register(r.Context(), client.RegisterRequest{
		Username: form.Username, Email: form.Email, Password: password,
	})
	if err != nil {
		slog.Info("registration failed", "email", form.Email, "error", err)
		form.Error = client.Message(err)
		a.renderer.PageStatus(w, r, failureStatus(err), "register", &render.PageData{Title: "Inscription", Data: form})
		return
	}

	if resp == nil || resp.Token == "" {
		http.Redirect(w, r, "/admin/login?registered=1", http.StatusSeeOther)
		return
	}
	if err := a.startSession(r.Context(), w, resp); err != nil {
		slog.Error("session create failed", "error", err)
		http.Redirect(w, r, "/admin/login?registered=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, adminHome, http.StatusSeeOther)
}

// Logout destroys the session and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (a *Auth) startSession(ctx context.Context, w http.ResponseWriter, resp *client.LoginResponse) error {
	_, err := a.sessions.Create(ctx, w, &session.Data{
		Token:    resp.Token,
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		Email:    resp.User.Email,
		Role:     resp.User.Role,
	})
	return err
}

// failureStatus mirrors the API's client errors; transport and server
// failures become 502.
func failureStatus(err error) int {
	var ce *client.Error
	if errors.As(err, &ce) && ce.Status >= 400 && ce.Status < 500 {
		return ce.Status
	}
	return http.StatusBadGateway
}

// safeNext keeps only local back-office paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, adminHome) || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	return next
}
