package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/rolodexhq/rolodex/api/internal/repository"
)

// AccountService handles destructive account-level operations.
type AccountService struct {
	users repository.UsersRepository
}

// NewAccountService builds a new AccountService instance.
func NewAccountService(users repository.UsersRepository) *AccountService {
	return &AccountService{users: users}
}

// DeleteAccount removes the user row; contacts, Google tokens and
// preferences are cascade-deleted by the database.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}
