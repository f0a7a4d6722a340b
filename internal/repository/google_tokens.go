package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolodexhq/rolodex/api/internal/entity"
)

// ErrTokenNotFound indicates the user has no Google account connected.
var ErrTokenNotFound = errors.New("google token not found")

// GoogleTokensRepository stores OAuth credentials per user.
type GoogleTokensRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.GoogleToken, error)
	Upsert(ctx context.Context, token *entity.GoogleToken) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// PGXGoogleTokensRepository implements GoogleTokensRepository with pgx.
type PGXGoogleTokensRepository struct {
	pool pgxPool
}

// NewPGXGoogleTokensRepository instantiates a token repository.
func NewPGXGoogleTokensRepository(pool *pgxpool.Pool) *PGXGoogleTokensRepository {
	return &PGXGoogleTokensRepository{pool: pool}
}

// Get returns the stored token for a user.
func (r *PGXGoogleTokensRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.GoogleToken, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT user_id, access_token, refresh_token, expiry, account_email, created_at, updated_at
        FROM google_tokens WHERE user_id = $1
    `, userID)

	var token entity.GoogleToken
	err := row.Scan(
		&token.UserID,
		&token.AccessToken,
		&token.RefreshToken,
		&token.Expiry,
		&token.AccountEmail,
		&token.CreatedAt,
		&token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("query google token: %w", err)
	}

	return &token, nil
}

// Upsert stores or replaces the user's token. Reconnecting a Google account
// overwrites the previous grant.
func (r *PGXGoogleTokensRepository) Upsert(ctx context.Context, token *entity.GoogleToken) error {
	if token == nil {
		return fmt.Errorf("token payload is nil")
	}

	_, err := r.pool.Exec(ctx, `
        INSERT INTO google_tokens (user_id, access_token, refresh_token, expiry, account_email, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            expiry = EXCLUDED.expiry,
            account_email = EXCLUDED.account_email,
            updated_at = NOW();
    `,
		token.UserID,
		token.AccessToken,
		token.RefreshToken,
		token.Expiry,
		token.AccountEmail,
	)
	if err != nil {
		return fmt.Errorf("upsert google token: %w", err)
	}
	return nil
}

// Delete disconnects the user's Google account.
func (r *PGXGoogleTokensRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM google_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete google token: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}
