package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultSecurityConfig(t *testing.T) {
	c := DefaultSecurityConfig()
	if !c.EnableCORS || c.MaxAge != 3600 {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", c.AllowedOrigins)
	}
	if len(c.AllowedMethods) != 2 || c.AllowedMethods[0] != http.MethodGet || c.AllowedMethods[1] != http.MethodOptions {
		t.Errorf("AllowedMethods = %v, want [GET OPTIONS]", c.AllowedMethods)
	}
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	handler := SecurityMiddleware(SecurityConfig{}, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("CORS disabled but Allow-Origin = %q", got)
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	tests := []struct {
		name       string
		config     SecurityConfig
		origin     string
		wantOrigin string
		wantMaxAge string
	}{
		{"wildcard", DefaultSecurityConfig(), "https://grafana.local", "*", "3600"},
		{"wildcard without origin header", DefaultSecurityConfig(), "", "*", "3600"},
		{
			name:       "listed origin echoed",
			config:     SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"https://a.test"}, MaxAge: 60},
			origin:     "https://a.test",
			wantOrigin: "https://a.test",
			wantMaxAge: "60",
		},
		{
			name:   "unlisted origin rejected",
			config: SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"https://a.test"}},
			origin: "https://b.test",
		},
		{
			name:       "non-positive max age falls back",
			config:     SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"*"}, MaxAge: -5},
			wantOrigin: "*",
			wantMaxAge: "3600",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityMiddleware(tt.config, func(http.ResponseWriter, *http.Request) {})
			req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Max-Age"); got != tt.wantMaxAge {
				t.Errorf("Max-Age = %q, want %q", got, tt.wantMaxAge)
			}
		})
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	called := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(http.ResponseWriter, *http.Request) {
		called = true
	})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodOptions, "/metrics", http.NoBody))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if called {
		t.Error("preflight must not reach the wrapped handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestSecurityMiddleware_PassesThrough(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodHead} {
		called := false
		handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(method, "/healthz", http.NoBody))
		if !called || rec.Code != http.StatusTeapot {
			t.Errorf("%s: called=%v status=%d", method, called, rec.Code)
		}
	}
}
