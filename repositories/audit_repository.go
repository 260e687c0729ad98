package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/battlenet-login/models"
)

// AuditRepository handles login event persistence
type AuditRepository interface {
	Create(ctx context.Context, event *models.LoginEvent) error
	ListRecentForUser(ctx context.Context, provider, providerUserID string, limit int) ([]models.LoginEvent, error)
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new login event
func (r *sqliteAuditRepository) Create(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_events (timestamp, provider, provider_user_id, outcome, reason, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	result, err := r.db.ExecContext(
		ctx,
		query,
		event.Timestamp,
		event.Provider,
		event.ProviderUserID,
		event.Outcome,
		event.Reason,
		event.UserAgent,
		event.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to insert login event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get login event id: %w", err)
	}
	event.ID = id
	return nil
}

// ListRecentForUser returns one provider identity's events, newest first
func (r *sqliteAuditRepository) ListRecentForUser(ctx context.Context, provider, providerUserID string, limit int) ([]models.LoginEvent, error) {
	query := `
		SELECT id, timestamp, provider, provider_user_id, outcome, reason, user_agent, ip_address
		FROM login_events
		WHERE provider = ? AND provider_user_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, provider, providerUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query login events: %w", err)
	}
	defer rows.Close()

	var events []models.LoginEvent
	for rows.Next() {
		var e models.LoginEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.ProviderUserID, &e.Outcome, &e.Reason, &e.UserAgent, &e.IPAddress); err != nil {
			return nil, fmt.Errorf("failed to scan login event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
