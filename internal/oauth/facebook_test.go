package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFacebookExchange(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fb-access-token",
			"token_type":   "bearer",
			"expires_in":   5183944,
		})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("access_token") != "fb-access-token" {
			t.Errorf("Expected access_token query param, got '%s'", q.Get("access_token"))
		}
		if q.Get("fields") != "id,name,email" {
			t.Errorf("Expected fields 'id,name,email', got '%s'", q.Get("fields"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "fb-user-1",
			"name":  "Alice Example",
			"email": "alice@example.com",
		})
	}))
	defer userInfoServer.Close()

	p := NewFacebookProvider(FacebookConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "https://app.example.com/oauth/facebook/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userInfoServer.URL,
	})

	identity, err := p.Exchange(context.Background(), "the-code")
	if err != nil {
		t.Fatalf("Failed to exchange code: %v", err)
	}

	if identity.Provider != "facebook" {
		t.Errorf("Expected provider 'facebook', got '%s'", identity.Provider)
	}
	if identity.ProviderUserID != "fb-user-1" {
		t.Errorf("Expected provider user id 'fb-user-1', got '%s'", identity.ProviderUserID)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("Expected email 'alice@example.com', got '%s'", identity.Email)
	}
}

func TestFacebookExchangeMissingUserID(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "fb-access-token"})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"name": "Alice Example"})
	}))
	defer userInfoServer.Close()

	p := NewFacebookProvider(FacebookConfig{
		TokenURL:    tokenServer.URL,
		UserInfoURL: userInfoServer.URL,
	})

	if _, err := p.Exchange(context.Background(), "the-code"); err == nil {
		t.Error("Expected an error when the profile has no id")
	}
}
