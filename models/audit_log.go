package models

import "time"

// Login outcomes recorded in the audit log
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// LoginEvent represents a single login attempt through a provider
type LoginEvent struct {
	ID             int64     `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"provider_user_id,omitempty"`
	Outcome        string    `json:"outcome"`
	Reason         string    `json:"reason,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	IPAddress      string    `json:"ip_address,omitempty"`
}

// RequestMeta carries the request details stored alongside a login event
type RequestMeta struct {
	UserAgent string
	IPAddress string
}
