package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kushkushal/Clustorix-Admin/internal/config"
	"github.com/Kushkushal/Clustorix-Admin/internal/db"
	"github.com/Kushkushal/Clustorix-Admin/internal/repository"
)

func openTestDB(t *testing.T) *pgxpool.Pool {
	url := os.Getenv("PORTAL_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("PORTAL_TEST_DB or DATABASE_URL not set")
		return nil
	}
	if err := db.RunMigrations(url); err != nil {
		t.Skipf("migrations failed: %v", err)
		return nil
	}
	pool, err := db.NewPool(context.Background(), url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	return pool
}

func doReq(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode error: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http error: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
}

func TestSchoolLifecycle(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()

	cfg := config.Config{
		HTTPAddr:             ":0",
		JWTSecret:            "test-secret",
		JWTIssuer:            "test-issuer",
		TokenTTL:             time.Hour,
		DefaultAdminEmail:    "admin@example.local",
		DefaultAdminPassword: "dev-password",
		CookieSameSite:       http.SameSiteLaxMode,
		LoginRatePerMinute:   6000,
		LoginRateBurst:       100,
	}
	store := repository.NewStore(pool)
	server := NewServer(cfg, store, nil)
	app := httptest.NewServer(server.Router())
	defer app.Close()

	// Sign in with the configured credentials; this grants SuperAdmin.
	resp := login(t, app, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
	var superAdmin tokenResponse
	decodeBody(t, resp, &superAdmin)
	if superAdmin.Token == "" {
		t.Fatal("expected login token")
	}

	// Register a plain Admin through the SuperAdmin-only endpoint.
	adminEmail := fmt.Sprintf("admin.%d@example.local", time.Now().UnixNano())
	resp = doReq(t, http.MethodPost, app.URL+"/api/v1/auth/register", superAdmin.Token, map[string]string{
		"name":     "Ops Admin",
		"email":    adminEmail,
		"password": "dev-password",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	var admin tokenResponse
	decodeBody(t, resp, &admin)
	if admin.User.Role != "Admin" {
		t.Fatalf("expected default Admin role, got %q", admin.User.Role)
	}

	// The registered Admin can log in with their own credentials.
	resp = login(t, app, adminEmail, "dev-password")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	schoolBody := map[string]interface{}{
		"school_name": fmt.Sprintf("Test School %d", time.Now().UnixNano()),
		"owner_name":  "Owner",
		"email":       fmt.Sprintf("school.%d@example.local", time.Now().UnixNano()),
		"password":    "dev-password",
		"phone":       "+33123456789",
		"address":     "1 Rue de Test",
		"city":        "Paris",
		"state":       "IDF",
	}

	// Admin cannot create a school.
	resp = doReq(t, http.MethodPost, app.URL+"/api/v1/schools/", admin.Token, schoolBody)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("admin create school: expected 403, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// SuperAdmin can.
	resp = doReq(t, http.MethodPost, app.URL+"/api/v1/schools/", superAdmin.Token, schoolBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create school: expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decodeBody(t, resp, &created)
	if created.Data.ID == "" {
		t.Fatal("expected created school id")
	}

	// Both roles can read it.
	for _, token := range []string{superAdmin.Token, admin.Token} {
		resp = doReq(t, http.MethodGet, app.URL+"/api/v1/schools/"+created.Data.ID, token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get school: expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Partial update touches only the named field.
	resp = doReq(t, http.MethodPut, app.URL+"/api/v1/schools/"+created.Data.ID, superAdmin.Token, map[string]string{
		"city": "Lyon",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update school: expected 200, got %d", resp.StatusCode)
	}
	var updated struct {
		Data struct {
			City      string `json:"city"`
			OwnerName string `json:"owner_name"`
		} `json:"data"`
	}
	decodeBody(t, resp, &updated)
	if updated.Data.City != "Lyon" || updated.Data.OwnerName != "Owner" {
		t.Fatalf("unexpected update result: %+v", updated.Data)
	}

	// List envelope carries a count.
	resp = doReq(t, http.MethodGet, app.URL+"/api/v1/schools/", superAdmin.Token, nil)
	var list struct {
		Success bool              `json:"success"`
		Count   int               `json:"count"`
		Data    []json.RawMessage `json:"data"`
	}
	decodeBody(t, resp, &list)
	if !list.Success || list.Count != len(list.Data) || list.Count < 1 {
		t.Fatalf("unexpected list envelope: count=%d len=%d", list.Count, len(list.Data))
	}

	// Delete, then a second lookup 404s.
	resp = doReq(t, http.MethodDelete, app.URL+"/api/v1/schools/"+created.Data.ID, superAdmin.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete school: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doReq(t, http.MethodGet, app.URL+"/api/v1/schools/"+created.Data.ID, superAdmin.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted school: expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterDuplicateEmail(t *testing.T) {
	pool := openTestDB(t)
	if pool == nil {
		return
	}
	defer pool.Close()

	cfg := config.Config{
		HTTPAddr:             ":0",
		JWTSecret:            "test-secret",
		JWTIssuer:            "test-issuer",
		TokenTTL:             time.Hour,
		DefaultAdminEmail:    "admin@example.local",
		DefaultAdminPassword: "dev-password",
		CookieSameSite:       http.SameSiteLaxMode,
		LoginRatePerMinute:   6000,
		LoginRateBurst:       100,
	}
	store := repository.NewStore(pool)
	server := NewServer(cfg, store, nil)
	app := httptest.NewServer(server.Router())
	defer app.Close()

	resp := login(t, app, cfg.DefaultAdminEmail, cfg.DefaultAdminPassword)
	var superAdmin tokenResponse
	decodeBody(t, resp, &superAdmin)

	body := map[string]string{
		"name":     "Dup Admin",
		"email":    fmt.Sprintf("dup.%d@example.local", time.Now().UnixNano()),
		"password": "dev-password",
	}
	resp = doReq(t, http.MethodPost, app.URL+"/api/v1/auth/register", superAdmin.Token, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doReq(t, http.MethodPost, app.URL+"/api/v1/auth/register", superAdmin.Token, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", resp.StatusCode)
	}
	var errBody map[string]interface{}
	decodeBody(t, resp, &errBody)
	if errBody["message"] != "Email already registered" {
		t.Fatalf("unexpected duplicate message: %v", errBody["message"])
	}
}
