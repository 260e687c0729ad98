package battlenet

import (
	"net/http"
	"time"

	"github.com/blogem/battlenet-login/authenticator"
)

type options struct {
	region        string
	baseURL       string
	client        *http.Client
	transport     http.RoundTripper
	verifier      *authenticator.IDTokenVerifier
	verifyIDToken bool
	scopes        []string
	now           func() time.Time
}

// Option customizes a Driver
type Option func(*options)

// WithRegion selects the Battle.net region (us, eu, kr, tw, cn)
func WithRegion(region string) Option {
	return func(o *options) {
		if region != "" {
			o.region = region
		}
	}
}

// WithBaseURL overrides the OAuth host; paths /authorize, /token and
// /userinfo are appended to it
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient replaces the client built from the config. Configured
// headers and timeout are then the caller's responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// WithTransport sets the base transport under the configured headers and timeout
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithIDTokenVerifier verifies id_tokens returned by the token endpoint
func WithIDTokenVerifier(v *authenticator.IDTokenVerifier) Option {
	return func(o *options) { o.verifier = v }
}

// WithOpenIDVerification verifies id_tokens against the region's published keys
func WithOpenIDVerification(enabled bool) Option {
	return func(o *options) { o.verifyIDToken = enabled }
}

// WithScopes registers driver scopes requested on every redirect
func WithScopes(scopes ...string) Option {
	return func(o *options) { o.scopes = append(o.scopes, scopes...) }
}

// WithClock sets the time source used for token expiry
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
