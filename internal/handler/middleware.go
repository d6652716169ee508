package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/dto"
)

// CodeTokenExpired is the machine-readable code clients branch on to run
// the refresh flow instead of re-authenticating.
const CodeTokenExpired = "token_expired"

// SessionMiddleware authenticates requests from the signed access token
// cookie and stores the user id in the context.
//
// The status split is deliberate: a missing cookie or an expired token is
// 401 (the client holds no usable credential and should refresh or log in),
// while a tampered cookie or an invalid token is 403 (the client presented
// something we never issued). Only the expired case carries a code, so
// clients know refresh can help.
func SessionMiddleware(cookies *auth.CookieManager, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := cookies.AccessToken(c)
		if err != nil {
			if errors.Is(err, auth.ErrNoCookie) {
				c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error:   "Unauthorized",
					Message: "Authentication required",
				})
			} else {
				c.JSON(http.StatusForbidden, dto.ErrorResponse{
					Error:   "Forbidden",
					Message: "Invalid session cookie",
				})
			}
			c.Abort()
			return
		}

		userID, err := tokens.VerifyAccessToken(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
					Error:   "Unauthorized",
					Message: "Access token expired",
					Code:    CodeTokenExpired,
				})
			} else {
				c.JSON(http.StatusForbidden, dto.ErrorResponse{
					Error:   "Forbidden",
					Message: "Invalid access token",
				})
			}
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
