package integration

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAuthFlow_SignupLoginProfile(t *testing.T) {
	server := newTestServer(t)

	token := server.signup(t, "alice@example.com", "supersecret")

	// Duplicate signup conflicts.
	w := server.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "alice@example.com", "password": "othersecret",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate signup, got %d", w.Code)
	}

	// Login returns a fresh token.
	w = server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "supersecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", w.Code, w.Body.String())
	}

	// Profile is reachable with the signup token.
	w = server.request(t, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile failed with %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	var profile struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("expected profile email, got %s", profile.Email)
	}

	// The password never appears in any response.
	if body := w.Body.String(); json.Valid([]byte(body)) {
		var raw map[string]interface{}
		_ = json.Unmarshal([]byte(body), &raw)
		if data, ok := raw["data"].(map[string]interface{}); ok {
			if _, leaked := data["password"]; leaked {
				t.Error("password field leaked in profile response")
			}
		}
	}
}

func TestAuthFlow_ProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/transactions"},
		{http.MethodGet, "/api/budget"},
		{http.MethodGet, "/api/goals"},
	}
	for _, p := range paths {
		w := server.request(t, p.method, p.path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestAuthFlow_LoginUniformError(t *testing.T) {
	server := newTestServer(t)
	server.signup(t, "bob@example.com", "supersecret")

	wrongPassword := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "bob@example.com", "password": "wrong-password",
	})
	unknownEmail := server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "supersecret",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both cases, got %d and %d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Error("wrong-password and unknown-email responses must be identical")
	}
}

func TestAuthFlow_PasswordReset(t *testing.T) {
	server := newTestServer(t)
	server.signup(t, "carol@example.com", "supersecret")

	// Unknown email still responds 200.
	w := server.request(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "nobody@example.com",
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for unknown email, got %d", w.Code)
	}

	w = server.request(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "carol@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("forgot-password failed with %d", w.Code)
	}
	if server.mailer.lastToken == "" {
		t.Fatal("expected a reset token to be issued")
	}

	w = server.request(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token": server.mailer.lastToken, "password": "brandnewsecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reset-password failed with %d: %s", w.Code, w.Body.String())
	}

	// Old password rejected, new one works.
	w = server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "supersecret",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected old password rejected, got %d", w.Code)
	}
	w = server.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "brandnewsecret",
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected new password accepted, got %d", w.Code)
	}
}

func TestAuthFlow_DeleteAccount(t *testing.T) {
	server := newTestServer(t)
	token := server.signup(t, "dave@example.com", "supersecret")

	// Seed some owned data.
	w := server.request(t, http.MethodPost, "/api/transactions", token, map[string]interface{}{
		"type": "income", "category": "needs", "amount": 1000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed transaction failed with %d", w.Code)
	}

	w = server.request(t, http.MethodDelete, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete account failed with %d: %s", w.Code, w.Body.String())
	}

	// The email is immediately free for a fresh signup.
	server.signup(t, "dave@example.com", "freshsecret")
}
