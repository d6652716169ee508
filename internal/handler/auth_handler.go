package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/dto"
	"github.com/shopward/commerce-api/internal/service"
)

// AuthHandler handles registration, login, token refresh and logout.
// Tokens never travel in response bodies, only in signed cookies.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// Register handles user registration. On success both token cookies are set
// and the new user id is returned.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	session, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, dto.ErrorResponse{
				Error:   "Conflict",
				Message: err.Error(),
			})
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "Internal server error",
			})
		}
		return
	}

	h.cookies.SetAccessToken(c, session.AccessToken)
	h.cookies.SetRefreshToken(c, session.RefreshToken)

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		UserID:  session.UserID,
		Message: "User registered successfully",
	})
}

// Login authenticates with email and password and sets both token cookies.
// An unknown email is 404, a wrong password 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "user not found",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "invalid credentials",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: "Internal server error",
			})
		}
		return
	}

	h.cookies.SetAccessToken(c, session.AccessToken)
	h.cookies.SetRefreshToken(c, session.RefreshToken)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged in successfully",
	})
}

// Refresh mints a new access token from the refresh token cookie. The
// refresh token itself is not rotated, so only the access cookie is reset.
// A missing cookie is 401, a tampered cookie or a token the store no longer
// holds is 403.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := h.cookies.RefreshToken(c)
	if err != nil {
		if errors.Is(err, auth.ErrNoCookie) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Refresh token cookie not present",
			})
		} else {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Invalid refresh token cookie",
			})
		}
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshForbidden) {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Refresh token invalid, expired, or revoked",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	h.cookies.SetAccessToken(c, accessToken)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Access token refreshed",
	})
}

// Logout revokes every refresh token the user holds and clears both
// cookies. Requires an authenticated session.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
		})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	h.cookies.Clear(c)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}
