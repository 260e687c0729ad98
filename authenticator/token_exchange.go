package authenticator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
)

// TokenExchangeClient exchanges authorization codes at a provider token endpoint
type TokenExchangeClient struct {
	config oauth2.Config
	client *http.Client
}

// NewTokenExchangeClient creates a client for the given credentials and token URL.
// Credentials are sent in the form body.
func NewTokenExchangeClient(clientID, clientSecret, tokenURL string, client *http.Client) *TokenExchangeClient {
	return &TokenExchangeClient{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
	}
}

// Exchange exchanges an authorization code for tokens.
// grant_type is always authorization_code.
func (c *TokenExchangeClient) Exchange(ctx context.Context, code, redirectURI string) (*Token, error) {
	conf := c.config
	conf.RedirectURL = redirectURI

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	oauth2Token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, exchangeError(err)
	}

	// Convert oauth2.Token to our Token type
	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry,
		ExpiresIn:    parseExpiresIn(oauth2Token.Extra("expires_in")),
	}

	// Extract ID token if present
	if idToken, ok := oauth2Token.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}

	return token, nil
}

// exchangeError maps x/oauth2 failures onto TokenExchangeError
func exchangeError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		return &TokenExchangeError{
			StatusCode: status,
			Message:    providerMessage(re.Body, re.Error()),
			Body:       re.Body,
			Err:        err,
		}
	}
	return &TokenExchangeError{Message: err.Error(), Err: err}
}

// parseExpiresIn accepts expires_in sent as a number or a numeric string.
// Values are clamped to 0..math.MaxInt32 seconds, the bound x/oauth2 applies.
func parseExpiresIn(v interface{}) int64 {
	var n int64
	switch x := v.(type) {
	case float64:
		if x > math.MaxInt32 {
			return math.MaxInt32
		}
		n = int64(x)
	case int64:
		n = x
	case string:
		n, _ = strconv.ParseInt(x, 10, 64)
	case fmt.Stringer:
		n, _ = strconv.ParseInt(x.String(), 10, 64)
	}

	switch {
	case n < 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	default:
		return n
	}
}
