package authenticator

import (
	"context"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
)

// IDTokenVerifier checks id_tokens returned alongside access tokens when
// the openid scope was granted
type IDTokenVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewRemoteIDTokenVerifier creates a verifier that fetches signing keys from
// jwksURL with client on first use. No network call happens here.
func NewRemoteIDTokenVerifier(client *http.Client, issuer, jwksURL, clientID string) *IDTokenVerifier {
	ctx := oidc.ClientContext(context.Background(), client)
	keySet := oidc.NewRemoteKeySet(ctx, jwksURL)
	return NewIDTokenVerifier(issuer, clientID, keySet)
}

// NewIDTokenVerifier creates a verifier over an arbitrary key set
func NewIDTokenVerifier(issuer, clientID string, keySet oidc.KeySet) *IDTokenVerifier {
	oidcConfig := &oidc.Config{
		ClientID: clientID,
	}
	return &IDTokenVerifier{verifier: oidc.NewVerifier(issuer, keySet, oidcConfig)}
}

// Verify validates signature, issuer, audience and expiry and returns the claims
func (v *IDTokenVerifier) Verify(ctx context.Context, rawIDToken string) (Claims, error) {
	if rawIDToken == "" {
		return nil, &IDTokenError{Err: errors.New("no id_token in token")}
	}

	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, &IDTokenError{Err: err}
	}

	var claims Claims
	if err := idToken.Claims(&claims); err != nil {
		return nil, &IDTokenError{Err: err}
	}

	return claims, nil
}
