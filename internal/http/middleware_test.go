package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/auth"
	"github.com/Kushkushal/Clustorix-Admin/internal/config"
	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"Bearer  spaced ", "spaced"},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestExtractTokenPrefersHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "cookie-token"})

	if got := extractToken(req); got != "header-token" {
		t.Fatalf("expected header token to win, got %q", got)
	}
}

func TestExtractTokenCookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "cookie-token"})

	if got := extractToken(req); got != "cookie-token" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := extractToken(bare); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}

func withIdentity(req *http.Request, identity *auth.Identity) *http.Request {
	if identity == nil {
		return req
	}
	return req.WithContext(context.WithValue(req.Context(), identityKey{}, identity))
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		identity *auth.Identity
		roles    []string
		want     int
	}{
		{"no identity", nil, []string{auth.RoleAdmin}, http.StatusUnauthorized},
		{"admin on admin route", &auth.Identity{Role: auth.RoleAdmin}, []string{auth.RoleSuperAdmin, auth.RoleAdmin}, http.StatusOK},
		{"admin on superadmin route", &auth.Identity{Role: auth.RoleAdmin}, []string{auth.RoleSuperAdmin}, http.StatusForbidden},
		{"superadmin on superadmin route", &auth.Identity{Role: auth.RoleSuperAdmin}, []string{auth.RoleSuperAdmin}, http.StatusOK},
		{"unknown role", &auth.Identity{Role: "Viewer"}, []string{auth.RoleSuperAdmin, auth.RoleAdmin}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := withIdentity(httptest.NewRequest(http.MethodGet, "/", nil), tc.identity)
			rec := httptest.NewRecorder()
			requireRoles(tc.roles...)(next).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

type staticUserSource map[string]model.User

func (s staticUserSource) GetUserByID(_ context.Context, id string) (model.User, error) {
	user, ok := s[id]
	if !ok {
		return model.User{}, pgx.ErrNoRows
	}
	return user, nil
}

// Every entity delete is reserved for SuperAdmin; a plain Admin must be
// turned away at the role gate before any handler runs.
func TestEntityDeletesRejectAdmin(t *testing.T) {
	cfg := config.Config{
		JWTSecret:          "test-secret",
		JWTIssuer:          "test-issuer",
		TokenTTL:           time.Hour,
		CookieSameSite:     http.SameSiteLaxMode,
		LoginRatePerMinute: 6000,
		LoginRateBurst:     100,
	}
	users := staticUserSource{
		"admin-1": {ID: "admin-1", Name: "Ops Admin", Email: "ops@example.local", Role: auth.RoleAdmin},
	}
	server := &Server{
		cfg:          cfg,
		resolver:     auth.NewResolver("", users),
		loginLimiter: newIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
	}
	app := httptest.NewServer(server.Router())
	defer app.Close()

	token, err := auth.NewToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, "admin-1")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	paths := []string{
		"/api/v1/schools/abc",
		"/api/v1/students/abc",
		"/api/v1/teachers/abc",
		"/api/v1/classes/abc",
		"/api/v1/subjects/abc",
		"/api/v1/attendances/abc",
		"/api/v1/fees/abc",
		"/api/v1/tickets/abc",
	}
	for _, path := range paths {
		req, _ := http.NewRequest(http.MethodDelete, app.URL+path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request error: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("DELETE %s as Admin: expected 403, got %d", path, resp.StatusCode)
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	handler := corsMiddleware([]string{"https://app.example.com"})(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
	))

	// Allowed origin gets the headers.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatal("expected allow-origin header for allowed origin")
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials header")
	}

	// Unknown origin gets nothing.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("expected no CORS headers for unknown origin")
	}

	// Preflight short-circuits with 204.
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := newIPRateLimiter(60, 2)

	if !limiter.allow("10.0.0.1") || !limiter.allow("10.0.0.1") {
		t.Fatal("burst requests should be allowed")
	}
	if limiter.allow("10.0.0.1") {
		t.Fatal("request beyond burst should be rejected")
	}
	// A different client has its own bucket.
	if !limiter.allow("10.0.0.2") {
		t.Fatal("separate client should not share the bucket")
	}
}

func TestIPRateLimiterPrunesStaleBuckets(t *testing.T) {
	limiter := newIPRateLimiter(60, 2)

	limiter.allow("10.0.0.1")
	limiter.allow("10.0.0.2")

	// Age one bucket past the idle cutoff and make the next lookup prune.
	limiter.mu.Lock()
	limiter.limiters["10.0.0.1"].lastSeen = time.Now().Add(-11 * time.Minute)
	limiter.lastPruned = time.Now().Add(-6 * time.Minute)
	limiter.mu.Unlock()

	limiter.allow("10.0.0.3")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.limiters["10.0.0.1"]; ok {
		t.Fatal("stale bucket should have been pruned")
	}
	if _, ok := limiter.limiters["10.0.0.2"]; !ok {
		t.Fatal("fresh bucket should survive pruning")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	if got := clientIP(req); got != "192.0.2.10" {
		t.Fatalf("expected remote addr host, got %q", got)
	}

	req.Header.Set("X-Real-IP", "198.51.100.7")
	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected X-Real-IP, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.7")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}
