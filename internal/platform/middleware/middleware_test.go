package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecuritySetsHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, kv := range securityHeaders {
		if got := resp.Header().Get(kv[0]); got != kv[1] {
			t.Errorf("%s: expected %q, got %q", kv[0], kv[1], got)
		}
	}
}

func TestSecuritySkipsPaths(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs/index", nil))

	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected no security headers on skipped path, got X-Frame-Options %q", got)
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestVaryAddsAccept(t *testing.T) {
	handler := Vary()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.WriteHeader(http.StatusOK)
	}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	vary := resp.Header().Values("Vary")
	if len(vary) != 2 || vary[0] != "Accept" || vary[1] != "Origin" {
		t.Fatalf("expected Vary [Accept Origin], got %v", vary)
	}
}

func TestCORSSimpleRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	req.Header.Set("Origin", "https://pipeline.example.com")
	resp := httptest.NewRecorder()
	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	exposed := resp.Header().Get("Access-Control-Expose-Headers")
	for _, want := range []string{"Link", chimiddleware.RequestIDHeader} {
		if !strings.Contains(exposed, want) {
			t.Errorf("expected exposed headers to contain %q, got %q", want, exposed)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/", nil)
	req.Header.Set("Origin", "https://pipeline.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	CORS()(next).ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered without calling the next handler")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); got != http.MethodGet {
		t.Fatalf("expected Access-Control-Allow-Methods GET, got %q", got)
	}
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	var captured string
	handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != captured {
		t.Fatalf("expected response header %q, got %q", captured, got)
	}
}

func TestRequestIDHeaderValidation(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reused   bool
	}{
		{"pipeline run id", "run-4821/deploy", true},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"max length", strings.Repeat("a", maxRequestIDLength), true},
		{"empty", "", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
		{"newline injection", "id\nforged=1", false},
		{"non-ascii", "id-ü", false},
		{"delete char", "id\x7f", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				captured = chimiddleware.GetReqID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header[chimiddleware.RequestIDHeader] = []string{tt.incoming}
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.reused {
				if captured != tt.incoming {
					t.Fatalf("expected %q to be reused, got %q", tt.incoming, captured)
				}
				return
			}
			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected generated UUID, got %q", captured)
			}
		})
	}
}
