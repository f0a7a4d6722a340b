package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoogleToken stores the OAuth credentials for a connected Google account.
// One row per user; reconnecting overwrites the previous grant.
type GoogleToken struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	AccountEmail string    `json:"account_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
