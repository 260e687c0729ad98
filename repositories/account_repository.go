package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blogem/battlenet-login/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// AccountRepository handles linked account persistence
type AccountRepository interface {
	Upsert(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByProviderUserID(ctx context.Context, provider, providerUserID string) (*models.Account, error)
}

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `
	id, provider, provider_user_id, nickname, email, name, avatar_url,
	access_token, refresh_token, token_expires_at, raw_profile, created_at, last_login_at
`

// Upsert inserts the account or refreshes the existing link for the same
// provider identity. ID, CreatedAt and LastLoginAt are set on return.
func (r *accountRepository) Upsert(ctx context.Context, account *models.Account) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO accounts (
			provider, provider_user_id, nickname, email, name, avatar_url,
			access_token, refresh_token, token_expires_at, raw_profile, created_at, last_login_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, provider_user_id) DO UPDATE SET
			nickname = excluded.nickname,
			email = excluded.email,
			name = excluded.name,
			avatar_url = excluded.avatar_url,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_expires_at = excluded.token_expires_at,
			raw_profile = excluded.raw_profile,
			last_login_at = excluded.last_login_at
	`

	var expiresAt sql.NullTime
	if account.TokenExpiresAt != nil {
		expiresAt = sql.NullTime{Time: account.TokenExpiresAt.UTC(), Valid: true}
	}
	rawProfile := account.RawProfile
	if rawProfile == "" {
		rawProfile = "{}"
	}

	_, err := r.db.ExecContext(ctx, query,
		account.Provider,
		account.ProviderUserID,
		account.Nickname,
		account.Email,
		account.Name,
		account.AvatarURL,
		account.AccessToken,
		account.RefreshToken,
		expiresAt,
		rawProfile,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}

	stored, err := r.GetByProviderUserID(ctx, account.Provider, account.ProviderUserID)
	if err != nil {
		return err
	}
	account.ID = stored.ID
	account.CreatedAt = stored.CreatedAt
	account.LastLoginAt = stored.LastLoginAt
	return nil
}

// GetByID retrieves an account by its local id
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByProviderUserID retrieves an account by provider identity
func (r *accountRepository) GetByProviderUserID(ctx context.Context, provider, providerUserID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE provider = ? AND provider_user_id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, provider, providerUserID))
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	var account models.Account
	var expiresAt sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.Provider,
		&account.ProviderUserID,
		&account.Nickname,
		&account.Email,
		&account.Name,
		&account.AvatarURL,
		&account.AccessToken,
		&account.RefreshToken,
		&expiresAt,
		&account.RawProfile,
		&account.CreatedAt,
		&account.LastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}

	// Convert NULL values to nil
	if expiresAt.Valid {
		account.TokenExpiresAt = &expiresAt.Time
	}

	return &account, nil
}
