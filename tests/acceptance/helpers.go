package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/shopward/commerce-api/internal/auth"
)

// postJSON sends a JSON body, optionally with session cookies attached.
func (s *Suite) postJSON(path string, payload any, cookies ...*http.Cookie) *http.Response {
	return s.sendJSON(http.MethodPost, path, payload, cookies...)
}

func (s *Suite) sendJSON(method, path string, payload any, cookies ...*http.Cookie) *http.Response {
	var body bytes.Buffer
	if payload != nil {
		s.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, s.BaseURL+path, &body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) send(method, path string, cookies ...*http.Cookie) *http.Response {
	req, err := http.NewRequest(method, s.BaseURL+path, nil)
	s.Require().NoError(err)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *Suite) decode(resp *http.Response, out any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

// registerUser creates an account and returns its session cookies.
func (s *Suite) registerUser(email string) (access, refresh *http.Cookie) {
	resp := s.postJSON("/users/register", map[string]string{
		"email":     email,
		"password":  "Password123",
		"full_name": "Test User",
	})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	access = findCookie(resp, auth.AccessTokenCookie)
	refresh = findCookie(resp, auth.RefreshTokenCookie)
	s.Require().NotNil(access, "registration must set the access token cookie")
	s.Require().NotNil(refresh, "registration must set the refresh token cookie")
	return access, refresh
}
