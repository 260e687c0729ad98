package authenticator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAuthorizationDenied(t *testing.T) {
	err := NewAuthorizationDenied("")
	assert.Equal(t, DefaultRedirectError, err.Message)
	assert.ErrorIs(t, err, ErrAuthorizationDenied)
	assert.NotErrorIs(t, err, ErrTokenExchangeFailed)

	err = NewAuthorizationDenied("user cancelled")
	assert.Equal(t, "user cancelled", err.Message)
	assert.Contains(t, err.Error(), "user cancelled")
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, &TokenExchangeError{StatusCode: 400, Message: "x", Err: cause}, ErrTokenExchangeFailed)
	assert.ErrorIs(t, &TokenExchangeError{Err: cause}, cause)
	assert.ErrorIs(t, &ProfileFetchError{StatusCode: 500, Err: cause}, ErrProfileFetchFailed)
	assert.ErrorIs(t, &ProfileFetchError{Err: cause}, cause)
	assert.ErrorIs(t, &IDTokenError{Err: cause}, ErrIDTokenInvalid)
	assert.ErrorIs(t, &ConfigError{Driver: "d", Missing: []string{"clientId"}}, ErrConfigInvalid)
}

func TestTokenExchangeErrorMessage(t *testing.T) {
	err := &TokenExchangeError{StatusCode: 400, Message: "invalid_grant"}
	assert.Equal(t, "token exchange failed: status 400: invalid_grant", err.Error())

	err = &TokenExchangeError{Message: "dial tcp: refused"}
	assert.Equal(t, "token exchange failed: dial tcp: refused", err.Error())
}

func TestProviderMessage(t *testing.T) {
	assert.Equal(t, "m", providerMessage([]byte(`{"message":"m","error":"e"}`), "fb"))
	assert.Equal(t, "e", providerMessage([]byte(`{"error":"e"}`), "fb"))
	assert.Equal(t, "raw text", providerMessage([]byte("raw text"), "fb"))
	assert.Equal(t, `"just a string"`, providerMessage([]byte(`"just a string"`), "fb"))
	assert.Equal(t, "fb", providerMessage(nil, "fb"))
	assert.Equal(t, "{}", providerMessage([]byte(`{}`), "fb"))
}

func TestHeaderTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v1", r.Header.Get("X-One"))
		assert.Equal(t, "caller", r.Header.Get("X-Two"), "caller headers win")
	}))
	defer srv.Close()

	headers := map[string]string{"X-One": "v1", "X-Two": "configured"}
	client := NewHTTPClient(time.Second, headers, nil)
	assert.Equal(t, time.Second, client.Timeout)

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("X-Two", "caller")
	resp, err := client.Do(req)
	if assert.NoError(t, err) {
		resp.Body.Close()
	}
	assert.Empty(t, req.Header.Get("X-One"), "original request untouched")

	// the map passed in is copied
	headers["X-One"] = "changed"
	req2, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	req2.Header.Set("X-Two", "caller")
	resp, err = client.Do(req2)
	if assert.NoError(t, err) {
		resp.Body.Close()
	}
}

func TestNewHTTPClientDefaults(t *testing.T) {
	client := NewHTTPClient(0, nil, nil)
	assert.Equal(t, DefaultHTTPTimeout, client.Timeout)
	assert.Equal(t, http.DefaultTransport, client.Transport)
}
