package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopward/commerce-api/internal/domain"
)

const (
	defaultFacebookAuthURL     = "https://www.facebook.com/v18.0/dialog/oauth"
	defaultFacebookTokenURL    = "https://graph.facebook.com/v18.0/oauth/access_token"
	defaultFacebookUserInfoURL = "https://graph.facebook.com/me"
)

// FacebookConfig configures the Facebook provider, with overridable
// endpoint URLs for tests.
type FacebookConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// FacebookProvider implements Provider for Facebook Login.
type FacebookProvider struct {
	config FacebookConfig
}

// NewFacebookProvider creates a Facebook provider.
func NewFacebookProvider(config FacebookConfig) *FacebookProvider {
	if config.AuthURL == "" {
		config.AuthURL = defaultFacebookAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultFacebookTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultFacebookUserInfoURL
	}
	return &FacebookProvider{config: config}
}

func (p *FacebookProvider) Name() string {
	return "facebook"
}

// AuthURL builds the authorization redirect requesting the email scope.
func (p *FacebookProvider) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {p.config.CallbackURL},
		"response_type": {"code"},
		"scope":         {"email"},
		"state":         {state},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

type facebookTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type facebookUserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Exchange trades the authorization code for an access token, then fetches
// id, name and email from the Graph API.
func (p *FacebookProvider) Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {p.config.CallbackURL},
	}

	var tokenResp facebookTokenResponse
	if err := postForm(ctx, p.config.TokenURL, data, &tokenResp); err != nil {
		return nil, fmt.Errorf("facebook token exchange failed: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("facebook token exchange returned empty access token")
	}

	infoURL := p.config.UserInfoURL + "?" + url.Values{
		"fields":       {"id,name,email"},
		"access_token": {tokenResp.AccessToken},
	}.Encode()

	var info facebookUserInfo
	if err := getJSON(ctx, infoURL, "", &info); err != nil {
		return nil, fmt.Errorf("facebook user info fetch failed: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("facebook user info missing id")
	}

	return &domain.ExternalIdentity{
		Provider:       p.Name(),
		ProviderUserID: info.ID,
		Email:          info.Email,
		FullName:       info.Name,
	}, nil
}
