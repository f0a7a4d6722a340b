package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/rolodexhq/rolodex/api/internal/entity"
	googleclient "github.com/rolodexhq/rolodex/api/internal/google"
	"github.com/rolodexhq/rolodex/api/internal/repository"
)

// AccountEmailFetcher resolves the email behind a freshly exchanged token.
type AccountEmailFetcher interface {
	UserEmail(ctx context.Context, token *oauth2.Token) (string, error)
}

// GoogleService manages the OAuth connection lifecycle for Google accounts.
type GoogleService struct {
	tokens  repository.GoogleTokensRepository
	oauth   *oauth2.Config
	fetcher AccountEmailFetcher
}

// NewGoogleService wires the connection service.
func NewGoogleService(tokens repository.GoogleTokensRepository, oauth *oauth2.Config, fetcher AccountEmailFetcher) *GoogleService {
	return &GoogleService{tokens: tokens, oauth: oauth, fetcher: fetcher}
}

// AuthURL returns the consent page URL carrying the given state.
func (s *GoogleService) AuthURL(state string) string {
	return googleclient.AuthURL(s.oauth, state)
}

// HandleCallback exchanges the authorization code and stores the resulting
// credentials for the user.
func (s *GoogleService) HandleCallback(ctx context.Context, userID uuid.UUID, code string) (*entity.GoogleToken, error) {
	if code == "" {
		return nil, errors.New("authorization code is missing")
	}

	token, err := googleclient.Exchange(ctx, s.oauth, code)
	if err != nil {
		return nil, err
	}

	email, err := s.fetcher.UserEmail(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve account email: %w", err)
	}

	stored := &entity.GoogleToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
		AccountEmail: email,
	}
	if err := s.tokens.Upsert(ctx, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// Status returns the stored connection, or ErrGoogleNotConnected.
func (s *GoogleService) Status(ctx context.Context, userID uuid.UUID) (*entity.GoogleToken, error) {
	token, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrGoogleNotConnected
		}
		return nil, err
	}
	return token, nil
}

// Disconnect removes the stored credentials.
func (s *GoogleService) Disconnect(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrGoogleNotConnected
		}
		return err
	}
	return nil
}
