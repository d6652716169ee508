package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/oauth"
	"github.com/shopward/commerce-api/internal/service"
	"go.uber.org/zap"
)

// stateCookie holds the CSRF state between the authorization redirect and
// the provider callback. SameSite must be Lax: the callback is a cross-site
// top-level navigation and a Strict cookie would not be sent with it.
const stateCookie = "oauthState"

const stateCookieMaxAge = 600 // seconds

// OAuthHandler runs the authorization-code flow against the configured
// providers and converts the asserted identity into a regular session.
type OAuthHandler struct {
	authService     service.AuthService
	cookies         *auth.CookieManager
	providers       map[string]oauth.Provider
	successRedirect string
	failureRedirect string
	secure          bool
	logger          *zap.Logger
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(
	authService service.AuthService,
	cookies *auth.CookieManager,
	providers []oauth.Provider,
	successRedirect, failureRedirect string,
	secure bool,
	logger *zap.Logger,
) *OAuthHandler {
	byName := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &OAuthHandler{
		authService:     authService,
		cookies:         cookies,
		providers:       byName,
		successRedirect: successRedirect,
		failureRedirect: failureRedirect,
		secure:          secure,
		logger:          logger,
	}
}

// Begin starts the authorization flow: generates a state value, stores it
// in a short-lived cookie, and redirects to the provider's consent page.
func (h *OAuthHandler) Begin(c *gin.Context) {
	provider, ok := h.providers[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: "unknown oauth provider",
		})
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", h.secure, true)

	c.Redirect(http.StatusFound, provider.AuthURL(state))
}

// Callback completes the flow: validates state, exchanges the code for the
// provider identity, issues a session, and redirects to the frontend.
// Every failure redirects to the failure page rather than rendering JSON,
// since the user arrives here by browser navigation.
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider, ok := h.providers[c.Param("provider")]
	if !ok {
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("oauth consent denied",
			zap.String("provider", provider.Name()),
			zap.String("error", errParam))
		h.clearState(c)
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	state := c.Query("state")
	expected, err := c.Cookie(stateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		h.logger.Warn("oauth state mismatch", zap.String("provider", provider.Name()))
		h.clearState(c)
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}
	h.clearState(c)

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	identity, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("oauth code exchange failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	session, err := h.authService.OAuthLogin(c.Request.Context(), *identity)
	if err != nil {
		h.logger.Error("oauth login failed",
			zap.String("provider", provider.Name()),
			zap.Error(err))
		c.Redirect(http.StatusFound, h.failureRedirect)
		return
	}

	h.cookies.SetAccessToken(c, session.AccessToken)
	h.cookies.SetRefreshToken(c, session.RefreshToken)

	c.Redirect(http.StatusFound, h.successRedirect)
}

func (h *OAuthHandler) clearState(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, "", -1, "/", "", h.secure, true)
}
