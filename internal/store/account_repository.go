package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fitz/dayslot/internal/models"
	"github.com/google/uuid"
)

// AccountRepository reads and writes linked OAuth accounts.
type AccountRepository struct {
	client *Client
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// GetByUser returns the user's linked account. Returns nil when the
// user has no linked account.
func (r *AccountRepository) GetByUser(ctx context.Context, userID string) (*models.Account, error) {
	row := r.client.db.QueryRowContext(ctx,
		`SELECT id, user_id, provider_id, access_token, refresh_token, token_expires_at
		 FROM account WHERE user_id = $1`, userID)

	var account models.Account
	var accessToken, refreshToken sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(&account.ID, &account.UserID, &account.ProviderID,
		&accessToken, &refreshToken, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if accessToken.Valid {
		account.AccessToken = accessToken.String
	}
	if refreshToken.Valid {
		account.RefreshToken = refreshToken.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		account.ExpiresAt = &t
	}
	return &account, nil
}

// Upsert stores or replaces the user's linked account.
func (r *AccountRepository) Upsert(ctx context.Context, account models.Account) (*models.Account, error) {
	if account.UserID == "" {
		return nil, fmt.Errorf("account has no owning user")
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	_, err := r.client.db.ExecContext(ctx,
		`INSERT INTO account (id, user_id, provider_id, access_token, refresh_token, token_expires_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		 ON CONFLICT (id) DO UPDATE SET
		     provider_id = EXCLUDED.provider_id,
		     access_token = EXCLUDED.access_token,
		     refresh_token = EXCLUDED.refresh_token,
		     token_expires_at = EXCLUDED.token_expires_at`,
		account.ID, account.UserID, account.ProviderID,
		account.AccessToken, account.RefreshToken, account.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return &account, nil
}
