// Package authenticator implements the OAuth2 authorization-code flow as a set
// of small stateless pieces: redirect URL construction, code exchange and
// profile retrieval. Provider drivers compose them explicitly.
package authenticator

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/blogem/battlenet-login/models"
)

// DefaultHTTPTimeout bounds every outbound provider request unless the config overrides it
const DefaultHTTPTimeout = 10 * time.Second

// Config holds the client registration shared by every driver
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	Headers      map[string]string
	Options      map[string]string
	HTTPTimeout  time.Duration
}

// Validate reports every missing required field
func (c Config) Validate(driver string) error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "clientSecret")
	}
	if c.RedirectURI == "" {
		missing = append(missing, "redirectUri")
	}
	if len(missing) > 0 {
		return &ConfigError{Driver: driver, Missing: missing}
	}
	return nil
}

// Timeout returns the configured transport timeout or the default
func (c Config) Timeout() time.Duration {
	if c.HTTPTimeout > 0 {
		return c.HTTPTimeout
	}
	return DefaultHTTPTimeout
}

// Endpoint holds the provider URLs used by the flow
type Endpoint struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// Token represents the result of a code exchange
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresIn    int64     // seconds, 0 when the provider sent none
	Expiry       time.Time // zero when the provider sent no expires_in
}

// RawProfile is the untyped user-info document returned by a provider
type RawProfile map[string]any

// Claims represents verified id_token claims
type Claims map[string]interface{}

// Driver is a provider login driver
type Driver interface {
	// Name returns the key the driver is registered under.
	Name() string

	// BuildRedirectURL returns the provider authorize URL. It is a pure
	// function of the driver config and its arguments.
	BuildRedirectURL(scopes []string, opts ...oauth2.AuthCodeOption) string

	// CompleteLogin finishes the flow from the provider callback query.
	CompleteLogin(ctx context.Context, params url.Values) (*models.User, error)
}
