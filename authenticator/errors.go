package authenticator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultRedirectError is used when the provider redirects back without a code or message
const DefaultRedirectError = "Oauth failed during redirect"

var (
	ErrConfigInvalid       = errors.New("invalid driver config")
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
	ErrProfileFetchFailed  = errors.New("profile fetch failed")
	ErrIDTokenInvalid      = errors.New("invalid id_token")
)

// ConfigError is returned when a driver is constructed with missing fields
type ConfigError struct {
	Driver  string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: missing %s", e.Driver, ErrConfigInvalid, strings.Join(e.Missing, ", "))
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfigInvalid }

// AuthorizationDeniedError is returned when the callback carries no code
type AuthorizationDeniedError struct {
	Message string
}

// NewAuthorizationDenied builds the error from the callback error_message, if any
func NewAuthorizationDenied(providerMessage string) *AuthorizationDeniedError {
	if providerMessage == "" {
		providerMessage = DefaultRedirectError
	}
	return &AuthorizationDeniedError{Message: providerMessage}
}

func (e *AuthorizationDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAuthorizationDenied, e.Message)
}

func (e *AuthorizationDeniedError) Is(target error) bool { return target == ErrAuthorizationDenied }

// TokenExchangeError is returned when the token endpoint rejects the exchange.
// StatusCode is 0 when no HTTP response was received.
type TokenExchangeError struct {
	StatusCode int
	Message    string
	Body       []byte
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", ErrTokenExchangeFailed, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrTokenExchangeFailed, e.StatusCode, e.Message)
}

func (e *TokenExchangeError) Is(target error) bool { return target == ErrTokenExchangeFailed }

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// ProfileFetchError is returned when the user-info endpoint fails or returns an unusable profile
type ProfileFetchError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ProfileFetchError) Error() string {
	msg := fmt.Sprintf("%s: status %d", ErrProfileFetchFailed, e.StatusCode)
	if len(e.Body) > 0 {
		msg += ": " + string(e.Body)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProfileFetchError) Is(target error) bool { return target == ErrProfileFetchFailed }

func (e *ProfileFetchError) Unwrap() error { return e.Err }

// IDTokenError is returned when a returned id_token fails verification
type IDTokenError struct {
	Err error
}

func (e *IDTokenError) Error() string {
	return fmt.Sprintf("%s: %v", ErrIDTokenInvalid, e.Err)
}

func (e *IDTokenError) Is(target error) bool { return target == ErrIDTokenInvalid }

func (e *IDTokenError) Unwrap() error { return e.Err }

// providerMessage extracts the user-visible message from a provider error body.
// JSON bodies win in the order message, error_description, error; anything
// else falls back to the raw text.
func providerMessage(body []byte, fallback string) string {
	var parsed struct {
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.ErrorDescription != "":
			return parsed.ErrorDescription
		case parsed.Error != "":
			return parsed.Error
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return fallback
}
