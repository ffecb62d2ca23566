// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"mlomp/internal/session"
)

// SessionStore is the part of *session.Store the middleware needs.
type SessionStore interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// TokenVerifier checks an API token against the content API.
// *client.Auth satisfies it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) bool
}

// LoginPath is where unauthenticated back-office visitors are sent.
const LoginPath = "/admin/login"

// LoadSession retrieves the session from Valkey and stores it in the
// request context. It does not enforce authentication.
func LoadSession(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err, "request_id", RequestIDFromCtx(r.Context()))
				next.ServeHTTP(w, r)
				return
			}
			if data != nil {
				r = r.WithContext(session.NewContext(r.Context(), data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects unauthenticated users to the login page, keeping
// the requested path in ?next=. Must be applied after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEditor returns 403 unless the session user may change content.
// Must be applied after RequireAuth.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		if sess == nil || !sess.CanEdit() {
			http.Error(w, "Accès refusé", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VerifyAPIToken re-checks the session's API token with the content API
// once per interval. A rejected token destroys the session and sends the
// user back to the login page. Must be applied after RequireAuth.
func VerifyAPIToken(verifier TokenVerifier, store SessionStore, interval time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if sess == nil || time.Since(sess.VerifiedAt) < interval {
				next.ServeHTTP(w, r)
				return
			}

			if !verifier.VerifyToken(r.Context(), sess.Token) {
				slog.Info("api token rejected, logging out", "user_id", sess.UserID)
				if err := store.Destroy(r.Context(), w, r); err != nil {
					slog.Warn("session destroy failed", "error", err)
				}
				redirectToLogin(w, r)
				return
			}

			sess.VerifiedAt = time.Now()
			if err := store.Update(r.Context(), r, sess); err != nil {
				slog.Warn("session touch failed", "error", err)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath
	if r.Method == http.MethodGet && r.URL.Path != LoginPath {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
