package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testCookieSecret = "cookie-secret-key-that-is-at-least-32-chars"

func newTestCookieManager(secure bool) *CookieManager {
	return NewCookieManager(testCookieSecret, secure, 15*time.Minute, 7*24*time.Hour)
}

// setAndRead writes a cookie through one gin context and reads it back
// through another, the way a real browser round-trip would.
func setAndRead(t *testing.T, m *CookieManager, write func(*gin.Context), read func(*gin.Context) (string, error)) (string, error, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	write(c)

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a cookie to be set")
	}
	cookie := cookies[0]

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookie)

	value, err := read(c2)
	return value, err, cookie
}

func TestAccessTokenCookieRoundTrip(t *testing.T) {
	m := newTestCookieManager(false)

	value, err, cookie := setAndRead(t, m,
		func(c *gin.Context) { m.SetAccessToken(c, "the-access-token") },
		m.AccessToken,
	)
	if err != nil {
		t.Fatalf("Failed to read access token cookie: %v", err)
	}
	if value != "the-access-token" {
		t.Errorf("Expected 'the-access-token', got '%s'", value)
	}

	if cookie.Name != AccessTokenCookie {
		t.Errorf("Expected cookie name '%s', got '%s'", AccessTokenCookie, cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("Expected cookie to be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Error("Expected cookie to be SameSite=Strict")
	}
	if cookie.MaxAge != int((15 * time.Minute).Seconds()) {
		t.Errorf("Expected MaxAge to match token lifetime, got %d", cookie.MaxAge)
	}
}

func TestRefreshTokenCookieRoundTrip(t *testing.T) {
	m := newTestCookieManager(false)

	value, err, cookie := setAndRead(t, m,
		func(c *gin.Context) { m.SetRefreshToken(c, "the-refresh-token") },
		m.RefreshToken,
	)
	if err != nil {
		t.Fatalf("Failed to read refresh token cookie: %v", err)
	}
	if value != "the-refresh-token" {
		t.Errorf("Expected 'the-refresh-token', got '%s'", value)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Errorf("Expected MaxAge to match token lifetime, got %d", cookie.MaxAge)
	}
}

func TestSecureFlagFollowsEnvironment(t *testing.T) {
	dev := newTestCookieManager(false)
	_, _, insecure := setAndRead(t, dev,
		func(c *gin.Context) { dev.SetAccessToken(c, "v") },
		dev.AccessToken,
	)
	if insecure.Secure {
		t.Error("Expected Secure to be off in development")
	}

	prod := newTestCookieManager(true)
	_, _, secure := setAndRead(t, prod,
		func(c *gin.Context) { prod.SetAccessToken(c, "v") },
		prod.AccessToken,
	)
	if !secure.Secure {
		t.Error("Expected Secure to be on outside development")
	}
}

func TestMissingCookie(t *testing.T) {
	m := newTestCookieManager(false)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if _, err := m.AccessToken(c); !errors.Is(err, ErrNoCookie) {
		t.Errorf("Expected ErrNoCookie, got %v", err)
	}
}

func TestTamperedCookie(t *testing.T) {
	m := newTestCookieManager(false)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.SetAccessToken(c, "the-access-token")

	cookie := w.Result().Cookies()[0]

	cases := map[string]string{
		"flipped value":     "x" + cookie.Value,
		"truncated tag":     cookie.Value[:len(cookie.Value)-2],
		"missing separator": "no-dot-here",
	}

	for name, value := range cases {
		w2 := httptest.NewRecorder()
		c2, _ := gin.CreateTestContext(w2)
		c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c2.Request.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: value})

		if _, err := m.AccessToken(c2); !errors.Is(err, ErrCookieTampered) {
			t.Errorf("%s: expected ErrCookieTampered, got %v", name, err)
		}
	}
}

func TestForeignSecretCookieIsTampered(t *testing.T) {
	writer := newTestCookieManager(false)
	reader := NewCookieManager("a-different-cookie-secret-32-chars-long!!", false, 15*time.Minute, 7*24*time.Hour)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writer.SetAccessToken(c, "the-access-token")

	cookie := w.Result().Cookies()[0]

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c2.Request.AddCookie(cookie)

	if _, err := reader.AccessToken(c2); !errors.Is(err, ErrCookieTampered) {
		t.Errorf("Expected ErrCookieTampered for cookie signed with another secret, got %v", err)
	}
}

func TestClearExpiresBothCookies(t *testing.T) {
	m := newTestCookieManager(false)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.Clear(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("Expected 2 cookies, got %d", len(cookies))
	}
	for _, cookie := range cookies {
		if cookie.MaxAge >= 0 {
			t.Errorf("Expected cookie %s to be expired, got MaxAge %d", cookie.Name, cookie.MaxAge)
		}
	}
}
