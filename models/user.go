package models

import (
	"errors"
	"time"
)

// ErrMissingUserID is returned when a profile carries no provider-assigned identifier
var ErrMissingUserID = errors.New("user profile has no id")

// User is the normalized user record returned by every login driver.
// Empty strings mean the provider did not supply the field.
type User struct {
	ID             string         `json:"id"`
	Nickname       string         `json:"nickname,omitempty"`
	Email          string         `json:"email,omitempty"`
	Name           string         `json:"name,omitempty"`
	AvatarURL      string         `json:"avatar_url,omitempty"`
	AccessToken    string         `json:"-"`
	RefreshToken   string         `json:"-"`
	TokenExpiresAt *time.Time     `json:"token_expires_at,omitempty"`
	RawProfile     map[string]any `json:"raw_profile,omitempty"`
}

// DisplayName returns the best human readable label for the user
func (u *User) DisplayName() string {
	switch {
	case u.Nickname != "":
		return u.Nickname
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

// UserBuilder assembles a User. Build freezes the result; the builder
// refuses further use afterwards.
type UserBuilder struct {
	user  User
	built bool
}

// NewUserBuilder creates an empty builder
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{}
}

// SetOriginal stores the raw provider profile
func (b *UserBuilder) SetOriginal(raw map[string]any) *UserBuilder {
	b.user.RawProfile = raw
	return b
}

// SetFields sets the identity fields
func (b *UserBuilder) SetFields(id, nickname, name, email, avatarURL string) *UserBuilder {
	b.user.ID = id
	b.user.Nickname = nickname
	b.user.Name = name
	b.user.Email = email
	b.user.AvatarURL = avatarURL
	return b
}

// SetToken sets the credentials. A zero expiresAt leaves TokenExpiresAt unset.
func (b *UserBuilder) SetToken(accessToken, refreshToken string, expiresAt time.Time) *UserBuilder {
	b.user.AccessToken = accessToken
	b.user.RefreshToken = refreshToken
	if !expiresAt.IsZero() {
		t := expiresAt
		b.user.TokenExpiresAt = &t
	} else {
		b.user.TokenExpiresAt = nil
	}
	return b
}

// Build returns the finished User
func (b *UserBuilder) Build() (*User, error) {
	if b.built {
		return nil, errors.New("user builder already used")
	}
	if b.user.ID == "" {
		return nil, ErrMissingUserID
	}
	b.built = true

	u := b.user
	if b.user.RawProfile != nil {
		u.RawProfile = make(map[string]any, len(b.user.RawProfile))
		for k, v := range b.user.RawProfile {
			u.RawProfile[k] = v
		}
	}
	return &u, nil
}
