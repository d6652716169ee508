package acceptance

import (
	"net/http"

	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	resp := s.postJSON("/users/register", map[string]string{
		"email":     "test@example.com",
		"password":  "Password123",
		"full_name": "Test User",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var body dto.RegisterResponse
	s.decode(resp, &body)
	s.NotEmpty(body.UserID)

	// Tokens travel only in cookies.
	access := findCookie(resp, auth.AccessTokenCookie)
	refresh := findCookie(resp, auth.RefreshTokenCookie)
	s.Require().NotNil(access)
	s.Require().NotNil(refresh)
	s.True(access.HttpOnly)
	s.True(refresh.HttpOnly)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.registerUser("duplicate@example.com")

	resp := s.postJSON("/users/register", map[string]string{
		"email":     "duplicate@example.com",
		"password":  "Password123",
		"full_name": "Test User",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal("Conflict", errResp.Error)
}

func (s *Suite) TestRegister_InvalidEmail() {
	resp := s.postJSON("/users/register", map[string]string{
		"email":     "invalid-email",
		"password":  "Password123",
		"full_name": "Test User",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.postJSON("/users/register", map[string]string{
		"email":     "weak@example.com",
		"password":  "alllowercase",
		"full_name": "Test User",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	s.registerUser("login@example.com")

	resp := s.postJSON("/users/login", map[string]string{
		"email":    "login@example.com",
		"password": "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotNil(findCookie(resp, auth.AccessTokenCookie))
	s.NotNil(findCookie(resp, auth.RefreshTokenCookie))
}

func (s *Suite) TestLogin_UnknownEmail() {
	resp := s.postJSON("/users/login", map[string]string{
		"email":    "nonexistent@example.com",
		"password": "Password123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.registerUser("wrongpass@example.com")

	resp := s.postJSON("/users/login", map[string]string{
		"email":    "wrongpass@example.com",
		"password": "WrongPassword123",
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_Success() {
	access, _ := s.registerUser("getme@example.com")

	resp := s.send(http.MethodGet, "/users/me", access)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.decode(resp, &user)
	s.NotEmpty(user.ID)
	s.Equal("getme@example.com", user.Email)
	s.NotEmpty(user.CreatedAt)
}

func (s *Suite) TestGetMe_NoCookie() {
	resp := s.send(http.MethodGet, "/users/me")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_TamperedCookie() {
	access, _ := s.registerUser("tampered@example.com")
	access.Value = "x" + access.Value

	resp := s.send(http.MethodGet, "/users/me", access)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestAccount_UpdateAndDelete() {
	access, _ := s.registerUser("account@example.com")

	updateResp := s.sendJSON(http.MethodPut, "/users/me", map[string]string{
		"email":     "renamed@example.com",
		"full_name": "Renamed User",
	}, access)
	defer updateResp.Body.Close()
	s.Require().Equal(http.StatusOK, updateResp.StatusCode)

	var updated dto.UserResponse
	s.decode(updateResp, &updated)
	s.Equal("renamed@example.com", updated.Email)

	deleteResp := s.send(http.MethodDelete, "/users/me", access)
	deleteResp.Body.Close()
	s.Equal(http.StatusOK, deleteResp.StatusCode)

	// The session cookie outlives the account, the account does not.
	meResp := s.send(http.MethodGet, "/users/me", access)
	defer meResp.Body.Close()
	s.Equal(http.StatusNotFound, meResp.StatusCode)
}

func (s *Suite) TestRefresh_Success() {
	_, refresh := s.registerUser("refresh@example.com")

	resp := s.send(http.MethodPost, "/token", refresh)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	// A fresh access cookie, no new refresh cookie: no rotation.
	s.NotNil(findCookie(resp, auth.AccessTokenCookie))
	s.Nil(findCookie(resp, auth.RefreshTokenCookie))
}

func (s *Suite) TestRefresh_NoCookie() {
	resp := s.send(http.MethodPost, "/token")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRefresh_AfterLogoutForbidden() {
	access, refresh := s.registerUser("revoked@example.com")

	logoutResp := s.send(http.MethodDelete, "/users/logout", access)
	logoutResp.Body.Close()
	s.Require().Equal(http.StatusOK, logoutResp.StatusCode)

	resp := s.send(http.MethodPost, "/token", refresh)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestLogout_ClearsCookies() {
	access, _ := s.registerUser("logout@example.com")

	resp := s.send(http.MethodDelete, "/users/logout", access)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	for _, name := range []string{auth.AccessTokenCookie, auth.RefreshTokenCookie} {
		cookie := findCookie(resp, name)
		s.Require().NotNil(cookie, "logout must reset cookie %s", name)
		s.Less(cookie.MaxAge, 0, "cookie %s must be expired", name)
	}
}

func (s *Suite) TestCompleteSessionFlow() {
	access, refresh := s.registerUser("complete@example.com")

	meResp := s.send(http.MethodGet, "/users/me", access)
	meResp.Body.Close()
	s.Equal(http.StatusOK, meResp.StatusCode)

	refreshResp := s.send(http.MethodPost, "/token", refresh)
	refreshResp.Body.Close()
	s.Require().Equal(http.StatusOK, refreshResp.StatusCode)
	newAccess := findCookie(refreshResp, auth.AccessTokenCookie)
	s.Require().NotNil(newAccess)

	meResp2 := s.send(http.MethodGet, "/users/me", newAccess)
	meResp2.Body.Close()
	s.Equal(http.StatusOK, meResp2.StatusCode)

	logoutResp := s.send(http.MethodDelete, "/users/logout", newAccess)
	logoutResp.Body.Close()
	s.Equal(http.StatusOK, logoutResp.StatusCode)

	// The refresh token is revoked; the access token stays valid until
	// its expiry.
	deadRefresh := s.send(http.MethodPost, "/token", refresh)
	deadRefresh.Body.Close()
	s.Equal(http.StatusForbidden, deadRefresh.StatusCode)
}
