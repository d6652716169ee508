package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestGoogleAuthURL(t *testing.T) {
	p := NewGoogleProvider(GoogleConfig{
		ClientID:    "client-id",
		CallbackURL: "https://app.example.com/oauth/google/callback",
	})

	raw := p.AuthURL("the-state")
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Failed to parse auth URL: %v", err)
	}

	q := parsed.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("Expected client_id 'client-id', got '%s'", q.Get("client_id"))
	}
	if q.Get("redirect_uri") != "https://app.example.com/oauth/google/callback" {
		t.Errorf("Unexpected redirect_uri '%s'", q.Get("redirect_uri"))
	}
	if q.Get("state") != "the-state" {
		t.Errorf("Expected state 'the-state', got '%s'", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("Expected response_type 'code', got '%s'", q.Get("response_type"))
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("Expected scope to request email, got '%s'", q.Get("scope"))
	}
}

func TestGoogleExchange(t *testing.T) {
	var tokenForm url.Values

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("Failed to parse token form: %v", err)
		}
		tokenForm = r.PostForm
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer provider-access-token" {
			t.Errorf("Expected bearer auth with provider token, got '%s'", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sub":   "google-user-1",
			"email": "alice@example.com",
			"name":  "Alice Example",
		})
	}))
	defer userInfoServer.Close()

	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "https://app.example.com/oauth/google/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userInfoServer.URL,
	})

	identity, err := p.Exchange(context.Background(), "the-code")
	if err != nil {
		t.Fatalf("Failed to exchange code: %v", err)
	}

	if tokenForm.Get("code") != "the-code" {
		t.Errorf("Expected code 'the-code', got '%s'", tokenForm.Get("code"))
	}
	if tokenForm.Get("grant_type") != "authorization_code" {
		t.Errorf("Expected grant_type 'authorization_code', got '%s'", tokenForm.Get("grant_type"))
	}
	if tokenForm.Get("client_secret") != "client-secret" {
		t.Errorf("Expected client_secret to be sent, got '%s'", tokenForm.Get("client_secret"))
	}

	if identity.Provider != "google" {
		t.Errorf("Expected provider 'google', got '%s'", identity.Provider)
	}
	if identity.ProviderUserID != "google-user-1" {
		t.Errorf("Expected provider user id 'google-user-1', got '%s'", identity.ProviderUserID)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("Expected email 'alice@example.com', got '%s'", identity.Email)
	}
	if identity.FullName != "Alice Example" {
		t.Errorf("Expected name 'Alice Example', got '%s'", identity.FullName)
	}
}

func TestGoogleExchangeTokenEndpointError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenServer.Close()

	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     tokenServer.URL,
	})

	if _, err := p.Exchange(context.Background(), "bad-code"); err == nil {
		t.Error("Expected an error for a rejected code")
	}
}

func TestGoogleExchangeEmptyAccessToken(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"token_type": "Bearer"})
	}))
	defer tokenServer.Close()

	p := NewGoogleProvider(GoogleConfig{TokenURL: tokenServer.URL})

	if _, err := p.Exchange(context.Background(), "the-code"); err == nil {
		t.Error("Expected an error when the provider returns no access token")
	}
}

func TestGenerateStateIsUnique(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("Failed to generate state: %v", err)
	}
	second, err := GenerateState()
	if err != nil {
		t.Fatalf("Failed to generate state: %v", err)
	}
	if first == second {
		t.Error("Expected state values to differ")
	}
	if len(first) < 24 {
		t.Errorf("Expected state to be at least 24 characters, got %d", len(first))
	}
}
