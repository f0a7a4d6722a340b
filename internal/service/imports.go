package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

var (
	// ErrGoogleNotConnected indicates the user has not linked a Google account.
	ErrGoogleNotConnected = errors.New("google account not connected")
	// ErrNoValidContacts indicates an export contained no usable rows.
	ErrNoValidContacts = errors.New("no valid contacts found in file")
)

// ContactsFetcher pulls already-normalized candidates from the Google
// People API with the stored credentials.
type ContactsFetcher interface {
	FetchContacts(ctx context.Context, token *entity.GoogleToken) ([]importer.Candidate, error)
}

// ImportService runs the two import pipelines end to end.
type ImportService struct {
	contacts repository.ContactsRepository
	tokens   repository.GoogleTokensRepository
	fetcher  ContactsFetcher
}

// NewImportService wires an import service from its collaborators.
func NewImportService(contacts repository.ContactsRepository, tokens repository.GoogleTokensRepository, fetcher ContactsFetcher) *ImportService {
	return &ImportService{contacts: contacts, tokens: tokens, fetcher: fetcher}
}

// ImportGoogle syncs the user's Google contacts. A fetch failure aborts the
// run before any write happens.
func (s *ImportService) ImportGoogle(ctx context.Context, userID uuid.UUID) (importer.Summary, error) {
	token, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return importer.Summary{}, ErrGoogleNotConnected
		}
		return importer.Summary{}, err
	}

	candidates, err := s.fetcher.FetchContacts(ctx, token)
	if err != nil {
		return importer.Summary{}, fmt.Errorf("fetch google contacts: %w", err)
	}

	return importer.New(s.contacts, s.contacts).Run(ctx, userID, candidates)
}

// ImportLinkedInCSV imports a connections export uploaded by the user.
func (s *ImportService) ImportLinkedInCSV(ctx context.Context, userID uuid.UUID, content string) (importer.Summary, error) {
	candidates, err := importer.ParseExport(content)
	if err != nil {
		return importer.Summary{}, err
	}
	if len(candidates) == 0 {
		return importer.Summary{}, ErrNoValidContacts
	}

	return importer.New(s.contacts, s.contacts).Run(ctx, userID, candidates)
}
