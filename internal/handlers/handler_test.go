// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: an in-memory content API served by httptest, a recording page
// cache and helpers to drive the portal router as a signed-in editor.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"mlomp/internal/client"
	"mlomp/internal/content"
	"mlomp/internal/models"
	"mlomp/internal/render"
	"mlomp/internal/session"
)

const testToken = "editor-token"

// fakeAPI is an in-memory content API. Writes need testToken; fail makes
// every call answer 500.
type fakeAPI struct {
	mu     sync.Mutex
	items  map[string][]map[string]any
	nextID int
	fail   bool
	calls  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: map[string][]map[string]any{}, nextID: 100}
}

// seed stores v (any entity) under collection.
func (f *fakeAPI) seed(collection string, v any) {
	raw, _ := json.Marshal(v)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	f.mu.Lock()
	f.items[collection] = append(f.items[collection], m)
	f.mu.Unlock()
}

func (f *fakeAPI) count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[collection])
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeAPI) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	if f.fail {
		writeTestJSON(w, http.StatusInternalServerError, map[string]string{"message": "Erreur interne du serveur"})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if parts[0] == "auth" {
		f.serveAuth(w, r, parts)
		return
	}
	collection := parts[0]

	if r.Method != http.MethodGet && r.Header.Get("Authorization") != "Bearer "+testToken {
		writeTestJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentification requise"})
		return
	}

	switch {
	case r.Method == http.MethodGet && len(parts) == 1:
		writeTestJSON(w, http.StatusOK, nonNilItems(f.items[collection]))
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "category":
		out := []map[string]any{}
		for _, it := range f.items[collection] {
			if it["category"] == parts[2] {
				out = append(out, it)
			}
		}
		writeTestJSON(w, http.StatusOK, out)
	case r.Method == http.MethodGet && len(parts) == 2:
		if it, _ := f.find(collection, parts[1]); it != nil {
			writeTestJSON(w, http.StatusOK, it)
			return
		}
		writeTestJSON(w, http.StatusNotFound, map[string]string{"message": "Élément non trouvé"})
	case r.Method == http.MethodPost && len(parts) == 1:
		it := f.body(r)
		it["id"] = fmt.Sprint(f.nextID)
		it["createdAt"] = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		f.nextID++
		f.items[collection] = append(f.items[collection], it)
		writeTestJSON(w, http.StatusCreated, it)
	case r.Method == http.MethodPut && len(parts) == 2:
		it, _ := f.find(collection, parts[1])
		if it == nil {
			writeTestJSON(w, http.StatusNotFound, map[string]string{"message": "Élément non trouvé"})
			return
		}
		for k, v := range f.body(r) {
			it[k] = v
		}
		writeTestJSON(w, http.StatusOK, it)
	case r.Method == http.MethodDelete && len(parts) == 2:
		_, i := f.find(collection, parts[1])
		if i < 0 {
			writeTestJSON(w, http.StatusNotFound, map[string]string{"message": "Élément non trouvé"})
			return
		}
		f.items[collection] = append(f.items[collection][:i], f.items[collection][i+1:]...)
		writeTestJSON(w, http.StatusOK, map[string]string{"message": "Supprimé"})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) serveAuth(w http.ResponseWriter, r *http.Request, parts []string) {
	user := map[string]any{"id": "1", "username": "awa", "email": "awa@mlomp.sn", "role": "editor"}
	switch parts[len(parts)-1] {
	case "login":
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret123" {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"message": "Email ou mot de passe incorrect"})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]any{"token": testToken, "user": user})
	case "register":
		var body struct{ Email string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email == "taken@mlomp.sn" {
			writeTestJSON(w, http.StatusConflict, map[string]string{"message": "Un compte existe déjà avec cet email"})
			return
		}
		writeTestJSON(w, http.StatusCreated, map[string]any{"token": testToken, "user": user})
	case "profile":
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"message": "Session expirée"})
			return
		}
		writeTestJSON(w, http.StatusOK, user)
	}
}

func (f *fakeAPI) find(collection, id string) (map[string]any, int) {
	for i, it := range f.items[collection] {
		if fmt.Sprint(it["id"]) == id {
			return it, i
		}
	}
	return nil, -1
}

// body decodes a JSON or multipart payload. An uploaded file is recorded
// under its field as a CDN URL.
func (f *fakeAPI) body(r *http.Request) map[string]any {
	out := map[string]any{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return out
		}
		for k, v := range r.MultipartForm.Value {
			out[k] = v[0]
		}
		for k, fh := range r.MultipartForm.File {
			out[k] = "https://cdn.test/" + fh[0].Filename
			if k == "mediaUrl" {
				out["type"] = "image"
			}
		}
		return out
	}
	_ = json.NewDecoder(r.Body).Decode(&out)
	if docs, ok := out["requiredDocs"].([]any); ok {
		raw, _ := json.Marshal(docs)
		out["requiredDocs"] = string(raw)
	}
	return out
}

func nonNilItems(items []map[string]any) []map[string]any {
	if items == nil {
		return []map[string]any{}
	}
	return items
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recordingCache is an in-memory PageCache that records invalidations.
type recordingCache struct {
	mu          sync.Mutex
	pages       map[string][]byte
	invalidated []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{pages: map[string][]byte{}}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	html, ok := c.pages[key]
	return html, ok
}

func (c *recordingCache) Set(_ context.Context, key string, html []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = html
}

func (c *recordingCache) InvalidatePage(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, key)
	delete(c.pages, key)
}

func (c *recordingCache) InvalidatePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, prefix+"*")
	for k := range c.pages {
		if strings.HasPrefix(k, prefix) {
			delete(c.pages, k)
		}
	}
}

func (c *recordingCache) wasInvalidated(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range c.invalidated {
		if k == key {
			return true
		}
	}
	return false
}

// testEnv wires handlers against a fake API.
type testEnv struct {
	api      *fakeAPI
	server   *httptest.Server
	cache    *recordingCache
	services *content.Services
	renderer *render.Renderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	rn, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	c := client.New(srv.URL, client.WithToken(session.Token))
	return &testEnv{
		api:      fake,
		server:   srv,
		cache:    newRecordingCache(),
		services: content.NewServices(c),
		renderer: rn,
	}
}

func editorSession() *session.Data {
	return &session.Data{Token: testToken, UserID: "1", Username: "awa", Email: "awa@mlomp.sn", Role: models.RoleEditor}
}

// adminRouter mounts the back-office as a signed-in editor.
func (e *testEnv) adminRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(session.NewContext(req.Context(), editorSession())))
		})
	})
	r.Route("/admin", NewAdmin(e.renderer, e.services, e.cache).Routes)
	return r
}

func (e *testEnv) publicRouter() http.Handler {
	r := chi.NewRouter()
	p := NewPublic(e.renderer, e.services, e.cache)
	p.Routes(r)
	r.NotFound(p.NotFound)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
