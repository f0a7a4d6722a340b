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

// ErrPreferencesNotFound indicates the user never saved any preferences.
var ErrPreferencesNotFound = errors.New("preferences not found")

// PreferencesRepository stores per-user table display settings.
type PreferencesRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.Preferences, error)
	Upsert(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error)
}

// PGXPreferencesRepository implements PreferencesRepository with pgx.
type PGXPreferencesRepository struct {
	pool pgxPool
}

// NewPGXPreferencesRepository instantiates a preferences repository.
func NewPGXPreferencesRepository(pool *pgxpool.Pool) *PGXPreferencesRepository {
	return &PGXPreferencesRepository{pool: pool}
}

// Get returns the stored preferences for a user.
func (r *PGXPreferencesRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.Preferences, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT user_id, sort_column, sort_direction, rows_per_page, created_at, updated_at
        FROM user_preferences WHERE user_id = $1
    `, userID)

	var prefs entity.Preferences
	err := row.Scan(
		&prefs.UserID,
		&prefs.SortColumn,
		&prefs.SortDirection,
		&prefs.RowsPerPage,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("query preferences: %w", err)
	}

	return &prefs, nil
}

// Upsert stores the preferences and returns the persisted row.
func (r *PGXPreferencesRepository) Upsert(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error) {
	if prefs == nil {
		return nil, fmt.Errorf("preferences payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO user_preferences (user_id, sort_column, sort_direction, rows_per_page, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            sort_column = EXCLUDED.sort_column,
            sort_direction = EXCLUDED.sort_direction,
            rows_per_page = EXCLUDED.rows_per_page,
            updated_at = NOW()
        RETURNING user_id, sort_column, sort_direction, rows_per_page, created_at, updated_at;
    `,
		prefs.UserID,
		prefs.SortColumn,
		prefs.SortDirection,
		prefs.RowsPerPage,
	)

	var saved entity.Preferences
	err := row.Scan(
		&saved.UserID,
		&saved.SortColumn,
		&saved.SortDirection,
		&saved.RowsPerPage,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert preferences: %w", err)
	}

	return &saved, nil
}
