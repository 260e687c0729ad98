package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/metrics"
	"github.com/blogem/battlenet-login/services"
)

// writeJSON encodes data with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// Controllers holds all controller instances
type Controllers struct {
	Auth    *AuthController
	Account *AccountController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, drivers map[string]authenticator.Driver, m *metrics.Metrics) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(drivers, services.Accounts, m),
		Account: NewAccountController(services.Accounts),
	}
}
