package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Contacts, tokens and preferences hang off it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
