package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blogem/battlenet-login/logger"
	"github.com/blogem/battlenet-login/repositories"
	"github.com/blogem/battlenet-login/services"
	"github.com/blogem/battlenet-login/userctx"
)

// AccountController serves the signed in account
type AccountController struct {
	accounts services.AccountService
}

// NewAccountController creates a new account controller
func NewAccountController(accounts services.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

// Me returns the linked account of the current session
func (ac *AccountController) Me(w http.ResponseWriter, r *http.Request) {
	account, err := ac.accounts.GetAccount(r.Context(), userctx.GetAccountID(r.Context()))
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.From(r.Context()).Error("failed to load account", logger.Err(err))
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Events lists the signed in account's recent login attempts, optionally bounded by ?limit=
func (ac *AccountController) Events(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := ac.accounts.RecentEvents(r.Context(), userctx.GetAccountID(r.Context()), limit)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.From(r.Context()).Error("failed to load login events", logger.Err(err))
		http.Error(w, "Failed to load login events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, events)
}
