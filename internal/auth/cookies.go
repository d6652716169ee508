package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names, fixed by the client contract.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Cookie read outcomes. A missing cookie means the client presented no
// credential at all; a tampered one means it presented something we never
// signed. The middleware maps them to different HTTP statuses.
var (
	ErrNoCookie       = errors.New("cookie not present")
	ErrCookieTampered = errors.New("cookie signature mismatch")
)

// CookieManager writes and reads the two token cookies. Values are
// tamper-evident: the cookie carries base64(value) plus an HMAC-SHA256 tag
// computed with a secret distinct from both JWT signing secrets. Cookies are
// HttpOnly, SameSite=Strict, and Secure outside local development.
type CookieManager struct {
	secret        []byte
	secure        bool
	accessMaxAge  int
	refreshMaxAge int
}

// NewCookieManager creates a cookie manager. Max ages are derived from the
// token lifetimes so a cookie never outlives its token.
func NewCookieManager(secret string, secure bool, accessExpiry, refreshExpiry time.Duration) *CookieManager {
	return &CookieManager{
		secret:        []byte(secret),
		secure:        secure,
		accessMaxAge:  int(accessExpiry.Seconds()),
		refreshMaxAge: int(refreshExpiry.Seconds()),
	}
}

// SetAccessToken attaches the access token cookie to the response.
func (m *CookieManager) SetAccessToken(c *gin.Context, token string) {
	m.set(c, AccessTokenCookie, token, m.accessMaxAge)
}

// SetRefreshToken attaches the refresh token cookie to the response.
func (m *CookieManager) SetRefreshToken(c *gin.Context, token string) {
	m.set(c, RefreshTokenCookie, token, m.refreshMaxAge)
}

// Clear removes both cookies. Attributes must match the ones used when
// setting, or cookie-based clients silently keep the old values.
func (m *CookieManager) Clear(c *gin.Context) {
	m.set(c, AccessTokenCookie, "", -1)
	m.set(c, RefreshTokenCookie, "", -1)
}

// AccessToken reads and authenticates the access token cookie.
func (m *CookieManager) AccessToken(c *gin.Context) (string, error) {
	return m.get(c, AccessTokenCookie)
}

// RefreshToken reads and authenticates the refresh token cookie.
func (m *CookieManager) RefreshToken(c *gin.Context) (string, error) {
	return m.get(c, RefreshTokenCookie)
}

func (m *CookieManager) set(c *gin.Context, name, value string, maxAge int) {
	encoded := ""
	if value != "" {
		encoded = m.encode(value)
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(name, encoded, maxAge, "/", "", m.secure, true)
}

func (m *CookieManager) get(c *gin.Context, name string) (string, error) {
	raw, err := c.Cookie(name)
	if err != nil || raw == "" {
		return "", ErrNoCookie
	}

	value, err := m.decode(raw)
	if err != nil {
		return "", err
	}

	return value, nil
}

// encode produces base64url(value) + "." + base64url(tag). The value is
// encoded first so the separator is unambiguous even for values that
// contain dots, like JWTs.
func (m *CookieManager) encode(value string) string {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value))
	return encoded + "." + m.sign(encoded)
}

func (m *CookieManager) decode(raw string) (string, error) {
	encoded, tag, found := strings.Cut(raw, ".")
	if !found {
		return "", ErrCookieTampered
	}

	expected := m.sign(encoded)
	if !hmac.Equal([]byte(tag), []byte(expected)) {
		return "", ErrCookieTampered
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrCookieTampered
	}

	return string(value), nil
}

func (m *CookieManager) sign(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
