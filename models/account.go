package models

import "time"

// Account links a provider identity to a local record
type Account struct {
	ID             int64      `json:"id"`
	Provider       string     `json:"provider"`
	ProviderUserID string     `json:"provider_user_id"`
	Nickname       string     `json:"nickname,omitempty"`
	Email          string     `json:"email,omitempty"`
	Name           string     `json:"name,omitempty"`
	AvatarURL      string     `json:"avatar_url,omitempty"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	RawProfile     string     `json:"-"` // JSON encoded provider profile
	CreatedAt      time.Time  `json:"created_at"`
	LastLoginAt    time.Time  `json:"last_login_at"`
}

// NewAccountFromUser maps a normalized login result to an Account
func NewAccountFromUser(provider string, user *User, rawProfile string) *Account {
	return &Account{
		Provider:       provider,
		ProviderUserID: user.ID,
		Nickname:       user.Nickname,
		Email:          user.Email,
		Name:           user.Name,
		AvatarURL:      user.AvatarURL,
		AccessToken:    user.AccessToken,
		RefreshToken:   user.RefreshToken,
		TokenExpiresAt: user.TokenExpiresAt,
		RawProfile:     rawProfile,
	}
}
