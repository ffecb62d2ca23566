// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"mlomp/internal/auth"
	"mlomp/internal/models"
)

// ClaimsVerifier validates bearer tokens. *auth.Issuer satisfies it.
type ClaimsVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type claimsKey struct{}

// BearerAuth authenticates API requests carrying an Authorization header.
// Requests without one pass through anonymously; a present but invalid
// token is rejected with 401.
func BearerAuth(v ClaimsVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := auth.BearerToken(header)
			if !ok {
				jsonError(w, http.StatusUnauthorized, "Jeton d'authentification invalide")
				return
			}
			claims, err := v.Verify(token)
			if err != nil {
				jsonError(w, http.StatusUnauthorized, "Session expirée, veuillez vous reconnecter")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// RequireRole rejects requests whose token lacks one of roles. With no
// roles, any authenticated user passes.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromCtx(r.Context())
			if claims == nil {
				jsonError(w, http.StatusUnauthorized, "Authentification requise")
				return
			}
			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				jsonError(w, http.StatusForbidden, "Accès refusé")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromCtx returns the verified token claims, or nil.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return c
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
