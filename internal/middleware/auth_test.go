// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mlomp/internal/models"
	"mlomp/internal/session"
)

// memStore is an in-memory SessionStore.
type memStore struct {
	data      *session.Data
	getErr    error
	updated   int
	destroyed bool
}

func (m *memStore) Get(ctx context.Context, r *http.Request) (*session.Data, error) {
	return m.data, m.getErr
}

func (m *memStore) Update(ctx context.Context, r *http.Request, d *session.Data) error {
	m.updated++
	m.data = d
	return nil
}

func (m *memStore) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	m.destroyed = true
	m.data = nil
	return nil
}

type stubVerifier struct {
	ok    bool
	calls int
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) bool {
	s.calls++
	return s.ok
}

func editorSession() *session.Data {
	return &session.Data{Token: "tok", UserID: models.IDFromInt(1), Username: "admin", Role: models.RoleAdmin}
}

func withSession(r *http.Request, d *session.Data) *http.Request {
	return r.WithContext(session.NewContext(r.Context(), d))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadSession(t *testing.T) {
	t.Run("stores session in context", func(t *testing.T) {
		store := &memStore{data: editorSession()}
		var got *session.Data
		h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = session.FromContext(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))
		if got == nil || got.Username != "admin" {
			t.Errorf("session in ctx: %+v", got)
		}
	})

	t.Run("store error continues anonymously", func(t *testing.T) {
		store := &memStore{getErr: errors.New("valkey down")}
		var called bool
		var got *session.Data
		h := LoadSession(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			got = session.FromContext(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if !called || got != nil {
			t.Errorf("called=%v session=%+v", called, got)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("redirects with next on GET", func(t *testing.T) {
		var called bool
		rr := httptest.NewRecorder()
		RequireAuth(okHandler(&called)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/news?x=1", nil))

		if called {
			t.Error("handler should not run without a session")
		}
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("status: got %d, want 303", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/admin/login?next=%2Fadmin%2Fnews%3Fx%3D1" {
			t.Errorf("Location: got %q", loc)
		}
	})

	t.Run("POST redirects without next", func(t *testing.T) {
		rr := httptest.NewRecorder()
		RequireAuth(okHandler(nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/news", nil))
		if loc := rr.Header().Get("Location"); loc != LoginPath {
			t.Errorf("Location: got %q, want %q", loc, LoginPath)
		}
	})

	t.Run("passes with session", func(t *testing.T) {
		var called bool
		rr := httptest.NewRecorder()
		req := withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), editorSession())
		RequireAuth(okHandler(&called)).ServeHTTP(rr, req)
		if !called || rr.Code != http.StatusOK {
			t.Errorf("called=%v status=%d", called, rr.Code)
		}
	})
}

func TestRequireEditor(t *testing.T) {
	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleEditor, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			d := editorSession()
			d.Role = tt.role
			rr := httptest.NewRecorder()
			RequireEditor(okHandler(nil)).ServeHTTP(rr, withSession(httptest.NewRequest(http.MethodGet, "/admin/news", nil), d))
			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestVerifyAPIToken(t *testing.T) {
	t.Run("rejected token logs out", func(t *testing.T) {
		store := &memStore{}
		verifier := &stubVerifier{ok: false}
		var called bool

		rr := httptest.NewRecorder()
		req := withSession(httptest.NewRequest(http.MethodGet, "/admin/projects", nil), editorSession())
		VerifyAPIToken(verifier, store, time.Minute)(okHandler(&called)).ServeHTTP(rr, req)

		if called {
			t.Error("handler should not run with a rejected token")
		}
		if !store.destroyed {
			t.Error("session should be destroyed")
		}
		if rr.Code != http.StatusSeeOther {
			t.Errorf("status: got %d, want 303", rr.Code)
		}
	})

	t.Run("accepted token refreshes VerifiedAt", func(t *testing.T) {
		store := &memStore{}
		verifier := &stubVerifier{ok: true}
		var called bool

		d := editorSession()
		req := withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), d)
		VerifyAPIToken(verifier, store, time.Minute)(okHandler(&called)).ServeHTTP(httptest.NewRecorder(), req)

		if !called || store.updated != 1 {
			t.Errorf("called=%v updated=%d", called, store.updated)
		}
		if d.VerifiedAt.IsZero() {
			t.Error("VerifiedAt not set")
		}
	})

	t.Run("recent verification skips the api", func(t *testing.T) {
		verifier := &stubVerifier{ok: false}
		d := editorSession()
		d.VerifiedAt = time.Now()
		var called bool

		req := withSession(httptest.NewRequest(http.MethodGet, "/admin", nil), d)
		VerifyAPIToken(verifier, &memStore{}, time.Minute)(okHandler(&called)).ServeHTTP(httptest.NewRecorder(), req)

		if verifier.calls != 0 || !called {
			t.Errorf("calls=%d called=%v", verifier.calls, called)
		}
	})
}
