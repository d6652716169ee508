package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/dto"
)

const (
	testAccessSecret  = "access-secret-key-that-is-at-least-32-chars"
	testRefreshSecret = "refresh-secret-key-that-is-at-least-32-chars"
	testCookieSecret  = "cookie-secret-key-that-is-at-least-32-chars"
)

type sessionTestEnv struct {
	router  *gin.Engine
	cookies *auth.CookieManager
	tokens  *auth.TokenManager
}

func newSessionTestEnv(t *testing.T, accessExpiry time.Duration) *sessionTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager(testAccessSecret, testRefreshSecret, accessExpiry, 7*24*time.Hour)
	cookies := auth.NewCookieManager(testCookieSecret, false, accessExpiry, 7*24*time.Hour)

	router := gin.New()
	router.GET("/protected", SessionMiddleware(cookies, tokens), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return &sessionTestEnv{router: router, cookies: cookies, tokens: tokens}
}

// accessCookie builds the signed cookie a logged-in browser would hold.
func (e *sessionTestEnv) accessCookie(t *testing.T, token string) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	e.cookies.SetAccessToken(c, token)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected an access token cookie")
	}
	return cookies[0]
}

func (e *sessionTestEnv) request(cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestSessionValidToken(t *testing.T) {
	env := newSessionTestEnv(t, 15*time.Minute)

	token, err := env.tokens.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	w := env.request(env.accessCookie(t, token))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body["user_id"] != "user-123" {
		t.Errorf("Expected user_id 'user-123', got '%s'", body["user_id"])
	}
}

func TestSessionNoCookieIsUnauthenticated(t *testing.T) {
	env := newSessionTestEnv(t, 15*time.Minute)

	w := env.request()

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with no cookie, got %d", w.Code)
	}

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Code == CodeTokenExpired {
		t.Error("Missing cookie must not carry the token_expired code")
	}
}

func TestSessionExpiredTokenCarriesCode(t *testing.T) {
	env := newSessionTestEnv(t, -time.Minute)

	token, err := env.tokens.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	w := env.request(env.accessCookie(t, token))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for expired token, got %d", w.Code)
	}

	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if body.Code != CodeTokenExpired {
		t.Errorf("Expected code '%s', got '%s'", CodeTokenExpired, body.Code)
	}
}

func TestSessionTamperedCookieIsForbidden(t *testing.T) {
	env := newSessionTestEnv(t, 15*time.Minute)

	token, err := env.tokens.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	cookie := env.accessCookie(t, token)
	cookie.Value = "x" + cookie.Value

	w := env.request(cookie)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for tampered cookie, got %d", w.Code)
	}
}

func TestSessionForeignSignedTokenIsForbidden(t *testing.T) {
	env := newSessionTestEnv(t, 15*time.Minute)

	foreign := auth.NewTokenManager(
		"some-other-access-secret-at-least-32-chars!",
		"some-other-refresh-secret-at-least-32-chars",
		15*time.Minute, 7*24*time.Hour,
	)
	token, err := foreign.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate access token: %v", err)
	}

	// The cookie signature is ours, the JWT inside is not.
	w := env.request(env.accessCookie(t, token))

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for foreign-signed token, got %d", w.Code)
	}
}

func TestSessionRefreshTokenInAccessCookieIsForbidden(t *testing.T) {
	env := newSessionTestEnv(t, 15*time.Minute)

	refresh, err := env.tokens.GenerateRefreshToken("user-123")
	if err != nil {
		t.Fatalf("Failed to generate refresh token: %v", err)
	}

	w := env.request(env.accessCookie(t, refresh))

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for refresh token in access cookie, got %d", w.Code)
	}
}
