package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"mlomp/internal/metrics"
)

func TestLoggerPassesStatusThrough(t *testing.T) {
	tests := []struct {
		name   string
		method string
		h      http.HandlerFunc
		status int
		body   string
	}{
		{"explicit 200", http.MethodGet, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }, 200, ""},
		{"404", http.MethodGet, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) }, 404, ""},
		{"implicit 200 on write", http.MethodGet, func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("bonjour")) }, 200, "bonjour"},
		{"post 201", http.MethodPost, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) }, 201, ""},
		{"502 logged at warn", http.MethodGet, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }, 502, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Logger(tt.h).ServeHTTP(rr, httptest.NewRequest(tt.method, "/actualites", nil))
			if rr.Code != tt.status {
				t.Errorf("status: got %d, want %d", rr.Code, tt.status)
			}
			if rr.Body.String() != tt.body {
				t.Errorf("body: got %q, want %q", rr.Body.String(), tt.body)
			}
		})
	}
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rw := wrap(httptest.NewRecorder())
	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write([]byte("x"))

	if rw.statusCode != http.StatusCreated {
		t.Errorf("statusCode: got %d, want 201", rw.statusCode)
	}
}

func TestWrapDoesNotDoubleWrap(t *testing.T) {
	rw := wrap(httptest.NewRecorder())
	if again := wrap(rw); again != rw {
		t.Error("wrap should return an existing responseWriter unchanged")
	}
	if rw.Unwrap() == nil {
		t.Error("Unwrap should expose the underlying writer")
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromCtx(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
			t.Errorf("ctx id %q, header %q", seen, rr.Header().Get(RequestIDHeader))
		}
	})

	t.Run("incoming reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		h.ServeHTTP(httptest.NewRecorder(), req)
		if seen != "abc-123" {
			t.Errorf("got %q, want abc-123", seen)
		}
	})

	t.Run("oversized incoming replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("a", 200))
		h.ServeHTTP(httptest.NewRecorder(), req)
		if len(seen) > 128 {
			t.Errorf("oversized id kept: %d chars", len(seen))
		}
	})
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics("test"))
	r.Get("/news/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues("test", http.MethodGet, "/news/{id}", "418")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/news/8", nil))

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("counter delta: got %v, want 2", got)
	}
}
