package api_test

import (
	"net/http"
	"testing"
)

func TestSignup_MissingFields(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]any{"email": "a@b.com"})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", res.StatusCode)
	}
}

func TestSignup_InvalidRole(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	res := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "A", "email": "a@b.com", "password": "pw", "role": "overlord",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid role, got %d", res.StatusCode)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	signup(t, srv, "Alice", "alice@example.com")

	res := doJSON(t, srv, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "Alice Again", "email": "alice@example.com", "password": "pw123456",
	})
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", res.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, res, &body)
	if body.Error == "" {
		t.Fatalf("expected error envelope, got empty error field")
	}
}

func TestSignin(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	signup(t, srv, "Alice", "alice@example.com")

	// wrong password
	res := doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email": "alice@example.com", "password": "wrong",
	})
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res.StatusCode)
	}

	// unknown email
	res = doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email": "nobody@example.com", "password": "pw123456",
	})
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", res.StatusCode)
	}

	// correct credentials return a token usable on protected routes
	res = doJSON(t, srv, http.MethodPost, "/api/auth/signin", "", map[string]any{
		"email": "alice@example.com", "password": "pw123456",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for signin, got %d", res.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, res, &body)
	if body.Token == "" {
		t.Fatalf("expected token in signin response")
	}

	res = doJSON(t, srv, http.MethodGet, "/api/jobs/my-jobs", body.Token, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected signin token to work on protected route, got %d", res.StatusCode)
	}
}

func TestSignout(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	token := signup(t, srv, "Alice", "alice@example.com")

	res := doJSON(t, srv, http.MethodPost, "/api/auth/signout", token, nil)
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for signout, got %d", res.StatusCode)
	}

	// signout requires a token
	res = doJSON(t, srv, http.MethodPost, "/api/auth/signout", "", nil)
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous signout, got %d", res.StatusCode)
	}
}
