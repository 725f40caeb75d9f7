package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hiredeck/hiredeck/api"
	dbfs "github.com/hiredeck/hiredeck/db"
	"github.com/hiredeck/hiredeck/internal/config"
	dbpkg "github.com/hiredeck/hiredeck/internal/db"
)

// setupServer starts the full router over a fresh in-memory database.
// Rate limiting is left disabled so tests can hammer the API.
func setupServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file::memory:?cache=shared", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "test-secret",
		APITimeout:    5 * time.Second,
		DatabasePath:  ":memory:",
		TokenDuration: time.Hour,
	}

	srv := httptest.NewServer(api.SetupRoutes(cfg, "test", "test", d))
	return srv, func() { srv.Close(); d.Close() }
}

// signup registers a user through the API and returns their bearer token.
func signup(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()
	res := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": name, "email": email, "password": "pw123456",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: expected 201 got %d", email, res.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("signup %s: empty token", email)
	}
	return body.Token
}

// doJSON issues a request with an optional bearer token and JSON payload.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func decodeBody(t *testing.T, res *http.Response, v any) {
	t.Helper()
	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
