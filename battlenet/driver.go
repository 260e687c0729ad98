// Package battlenet implements the Battle.net login driver on top of the
// generic authorization-code flow in package authenticator.
package battlenet

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/logger"
	"github.com/blogem/battlenet-login/models"
)

// Name is the key the driver registers under
const Name = "battlenet"

// DefaultScopes are requested when the config lists none
var DefaultScopes = []string{"account.public"}

// Driver is the Battle.net OAuth2 driver. It holds no per-login state and is
// safe for concurrent use.
type Driver struct {
	redirectURI string
	oauth       oauth2.Config
	endpoint    authenticator.Endpoint
	scopes      []string
	extraScopes []string
	options     map[string]string
	tokens      *authenticator.TokenExchangeClient
	profiles    *authenticator.ProfileFetcher
	verifier    *authenticator.IDTokenVerifier
	now         func() time.Time
}

var _ authenticator.Driver = (*Driver)(nil)

// New creates a Battle.net driver. It fails with authenticator.ErrConfigInvalid
// before any network activity when required fields are missing.
func New(cfg authenticator.Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(Name); err != nil {
		return nil, err
	}

	o := options{region: DefaultRegion, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.baseURL
	if base == "" {
		host, err := hostFor(o.region)
		if err != nil {
			return nil, err
		}
		base = host
	}
	base = strings.TrimRight(base, "/")
	endpoint := endpointFor(base)

	client := o.client
	if client == nil {
		client = authenticator.NewHTTPClient(cfg.Timeout(), cfg.Headers, o.transport)
	}

	scopes := authenticator.MergeScopes(cfg.Scopes)
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	urlParams := make(map[string]string, len(cfg.Options))
	for k, v := range cfg.Options {
		urlParams[k] = v
	}

	verifier := o.verifier
	if verifier == nil && o.verifyIDToken {
		verifier = authenticator.NewRemoteIDTokenVerifier(client, base, base+jwksPath, cfg.ClientID)
	}

	return &Driver{
		redirectURI: cfg.RedirectURI,
		oauth: oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURI,
			Endpoint:    oauth2.Endpoint{AuthURL: endpoint.AuthURL, TokenURL: endpoint.TokenURL},
		},
		endpoint:    endpoint,
		scopes:      append([]string(nil), scopes...),
		extraScopes: authenticator.MergeScopes(o.scopes),
		options:     urlParams,
		tokens:      authenticator.NewTokenExchangeClient(cfg.ClientID, cfg.ClientSecret, endpoint.TokenURL, client),
		profiles:    authenticator.NewProfileFetcher(endpoint.UserInfoURL, client),
		verifier:    verifier,
		now:         o.now,
	}, nil
}

// Name returns the registration key
func (d *Driver) Name() string {
	return Name
}

// Endpoint returns the provider URLs in use
func (d *Driver) Endpoint() authenticator.Endpoint {
	return d.endpoint
}

// BuildRedirectURL returns the Battle.net authorize URL. The scope set is the
// union of scopes, the configured (or default) scopes and the driver scopes.
func (d *Driver) BuildRedirectURL(scopes []string, opts ...oauth2.AuthCodeOption) string {
	return authenticator.AuthCodeURL(&d.oauth, authenticator.MergeScopes(scopes, d.scopes, d.extraScopes), d.options, opts...)
}

// CompleteLogin exchanges the callback code for tokens, fetches the profile
// and returns the normalized user. Nothing is retried or cached.
func (d *Driver) CompleteLogin(ctx context.Context, params url.Values) (*models.User, error) {
	log := logger.From(ctx).With(logger.Provider(Name), logger.Op("complete_login"))

	code := params.Get("code")
	if code == "" {
		err := authenticator.NewAuthorizationDenied(params.Get("error_message"))
		log.Info("callback without code", logger.Err(err),
			zap.String("error", params.Get("error")),
			zap.String("error_description", params.Get("error_description")))
		return nil, err
	}

	token, err := d.tokens.Exchange(ctx, code, d.redirectURI)
	if err != nil {
		log.Warn("token exchange failed", logger.Err(err))
		return nil, err
	}
	log.Debug("token exchanged", zap.Bool("refresh_token", token.RefreshToken != ""), zap.Bool("id_token", token.IDToken != ""))

	if token.IDToken != "" && d.verifier != nil {
		if _, err := d.verifier.Verify(ctx, token.IDToken); err != nil {
			log.Warn("id_token rejected", logger.Err(err))
			return nil, err
		}
	}

	profile, err := d.profiles.Fetch(ctx, token.AccessToken)
	if err != nil {
		log.Warn("profile fetch failed", logger.Err(err))
		return nil, err
	}

	user, err := mapUser(profile, token, d.now())
	if err != nil {
		log.Warn("profile could not be mapped", logger.Err(err))
		return nil, err
	}

	log.Debug("login completed", logger.UserID(user.ID))
	return user, nil
}
