// Package oauth implements federated login against third-party identity
// providers. The bridge code depends only on the Provider interface; each
// provider implements the authorization-code flow once.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/shopward/commerce-api/internal/domain"
)

// Provider is the capability a federated identity provider exposes:
// start the redirect flow, then turn a callback code into an identity.
type Provider interface {
	// Name identifies the provider ("google", "facebook").
	Name() string
	// AuthURL returns the provider's authorization URL for the given
	// anti-forgery state.
	AuthURL(state string) string
	// Exchange trades the callback authorization code for the user's
	// identity as asserted by the provider.
	Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}

// GenerateState produces an unguessable state parameter for one auth
// round trip.
func GenerateState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
