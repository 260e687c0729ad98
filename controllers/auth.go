package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/logger"
	"github.com/blogem/battlenet-login/metrics"
	"github.com/blogem/battlenet-login/middleware"
	"github.com/blogem/battlenet-login/models"
	"github.com/blogem/battlenet-login/services"
)

const (
	sessionState         = "state"
	sessionStateProvider = "state_provider"
)

// AuthController drives the provider login round trip
type AuthController struct {
	drivers  map[string]authenticator.Driver
	accounts services.AccountService
	metrics  *metrics.Metrics
}

// NewAuthController creates a new auth controller over the configured drivers
func NewAuthController(drivers map[string]authenticator.Driver, accounts services.AccountService, m *metrics.Metrics) *AuthController {
	return &AuthController{
		drivers:  drivers,
		accounts: accounts,
		metrics:  m,
	}
}

// Login initiates the authentication process for /login/{provider}
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	driver, ok := ac.drivers[provider]
	if !ok {
		http.Error(w, "Unknown login provider", http.StatusNotFound)
		return
	}

	// Generate random state
	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set(sessionState, state)
	sess.Set(sessionStateProvider, provider)

	scopes := r.URL.Query()["scope"]
	redirectURL := driver.BuildRedirectURL(scopes, oauth2.SetAuthURLParam("state", state))

	logger.From(r.Context()).Debug("redirecting to provider",
		logger.Provider(provider), logger.Scopes(scopes))

	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

// Callback handles the provider redirect on /callback/{provider}
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	driver, ok := ac.drivers[provider]
	if !ok {
		http.Error(w, "Unknown login provider", http.StatusNotFound)
		return
	}

	// Get session
	sess := session.GetSession(r)

	// Verify state
	storedState, _ := sess.Get(sessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	storedProvider, _ := sess.Get(sessionStateProvider).(string)
	if r.URL.Query().Get("state") != storedState || storedProvider != provider {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	// Clear the state from session, it is single use
	sess.Delete(sessionState)
	sess.Delete(sessionStateProvider)

	ctx := r.Context()
	log := logger.From(ctx).With(logger.Provider(provider))
	meta := models.RequestMeta{
		UserAgent: r.UserAgent(),
		IPAddress: middleware.ClientIP(r),
	}

	user, err := driver.CompleteLogin(ctx, r.URL.Query())
	ac.metrics.ObserveLogin(provider, err)
	if err != nil {
		if auditErr := ac.accounts.RecordFailure(ctx, provider, err, meta); auditErr != nil {
			log.Warn("failed to record login failure", logger.Err(auditErr))
		}
		status := loginErrorStatus(err)
		log.Info("login failed", logger.Err(err), logger.Status(status))
		http.Error(w, "Login failed: "+err.Error(), status)
		return
	}

	account, err := ac.accounts.RecordLogin(ctx, provider, user, meta)
	if err != nil {
		log.Error("failed to save account", logger.UserID(user.ID), logger.Err(err))
		http.Error(w, "Failed to save account", http.StatusInternalServerError)
		return
	}

	// Store the user session with nickname
	sess.Set(middleware.SessionAccountID, account.ID)
	sess.Set(middleware.SessionNickname, user.DisplayName())

	log.Info("login succeeded", logger.UserID(user.ID), zap.Int64("account_id", account.ID))

	target := "/me"
	if dest, ok := sess.Get(middleware.SessionRedirectAfter).(string); ok && dest != "" {
		target = dest
		sess.Delete(middleware.SessionRedirectAfter)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout clears the signed in user from the session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionAccountID)
	sess.Delete(middleware.SessionNickname)
	w.WriteHeader(http.StatusNoContent)
}

// loginErrorStatus maps the driver error taxonomy to a response code
func loginErrorStatus(err error) int {
	switch {
	case errors.Is(err, authenticator.ErrAuthorizationDenied):
		return http.StatusUnauthorized
	case errors.Is(err, authenticator.ErrTokenExchangeFailed),
		errors.Is(err, authenticator.ErrProfileFetchFailed),
		errors.Is(err, authenticator.ErrIDTokenInvalid):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
