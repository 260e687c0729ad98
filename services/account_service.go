package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blogem/battlenet-login/logger"
	"github.com/blogem/battlenet-login/models"
	"github.com/blogem/battlenet-login/repositories"
)

// AccountService interface defines what happens around a completed login
type AccountService interface {
	RecordLogin(ctx context.Context, provider string, user *models.User, meta models.RequestMeta) (*models.Account, error)
	RecordFailure(ctx context.Context, provider string, loginErr error, meta models.RequestMeta) error
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	RecentEvents(ctx context.Context, accountID int64, limit int) ([]models.LoginEvent, error)
}

// accountService implements AccountService interface
type accountService struct {
	accountRepo repositories.AccountRepository
	auditRepo   repositories.AuditRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repositories.AccountRepository, auditRepo repositories.AuditRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
	}
}

// RecordLogin links the user to a local account and records a success event.
// A failed audit write is logged but does not fail the login.
func (s *accountService) RecordLogin(ctx context.Context, provider string, user *models.User, meta models.RequestMeta) (*models.Account, error) {
	if user == nil || user.ID == "" {
		return nil, models.ErrMissingUserID
	}

	rawProfile := "{}"
	if len(user.RawProfile) > 0 {
		b, err := json.Marshal(user.RawProfile)
		if err != nil {
			return nil, fmt.Errorf("failed to encode profile: %w", err)
		}
		rawProfile = string(b)
	}

	account := models.NewAccountFromUser(provider, user, rawProfile)
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	event := &models.LoginEvent{
		Provider:       provider,
		ProviderUserID: user.ID,
		Outcome:        models.OutcomeSuccess,
		UserAgent:      meta.UserAgent,
		IPAddress:      meta.IPAddress,
	}
	if err := s.auditRepo.Create(ctx, event); err != nil {
		logger.From(ctx).Warn("failed to record login event",
			logger.Provider(provider), logger.UserID(user.ID), logger.Err(err))
	}

	return account, nil
}

// RecordFailure stores a failure event with the error text as reason
func (s *accountService) RecordFailure(ctx context.Context, provider string, loginErr error, meta models.RequestMeta) error {
	if loginErr == nil {
		return errors.New("no login error to record")
	}

	event := &models.LoginEvent{
		Provider:  provider,
		Outcome:   models.OutcomeFailure,
		Reason:    loginErr.Error(),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	}
	if err := s.auditRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by ID
func (s *accountService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid account ID: %d", id)
	}
	return s.accountRepo.GetByID(ctx, id)
}

// Bounds for RecentEvents
const (
	defaultEventLimit = 20
	maxEventLimit     = 100
)

// RecentEvents returns the account's latest login events, newest first.
// Only events of the account's own provider identity are returned.
func (s *accountService) RecentEvents(ctx context.Context, accountID int64, limit int) ([]models.LoginEvent, error) {
	switch {
	case limit <= 0:
		limit = defaultEventLimit
	case limit > maxEventLimit:
		limit = maxEventLimit
	}

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	events, err := s.auditRepo.ListRecentForUser(ctx, account.Provider, account.ProviderUserID, limit)
	if err != nil {
		return nil, err
	}
	logger.From(ctx).Debug("loaded login events", zap.Int("count", len(events)))
	return events, nil
}
