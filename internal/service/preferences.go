package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/repository"
)

// PreferenceValidationError indicates an invalid preferences payload.
type PreferenceValidationError struct {
	Message string
}

// Error implements the error interface.
func (e PreferenceValidationError) Error() string {
	return e.Message
}

// PreferencesService manages per-user table display settings.
type PreferencesService struct {
	repo repository.PreferencesRepository
}

// NewPreferencesService creates a new instance of PreferencesService.
func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

// GetPreferences returns the user's settings, falling back to defaults for
// users who never saved any.
func (s *PreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.Preferences, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return entity.DefaultPreferences(userID), nil
		}
		return nil, err
	}
	return prefs, nil
}

// UpdatePreferences validates the payload and upserts the settings; omitted
// fields keep their current (or default) value.
func (s *PreferencesService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req dto.UpdatePreferencesRequest) (*entity.Preferences, error) {
	current, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.SortColumn != nil {
		if !containsString(entity.ValidSortColumns, *req.SortColumn) {
			return nil, PreferenceValidationError{Message: fmt.Sprintf("invalid sort column %q", *req.SortColumn)}
		}
		current.SortColumn = *req.SortColumn
	}
	if req.SortDirection != nil {
		if *req.SortDirection != "asc" && *req.SortDirection != "desc" {
			return nil, PreferenceValidationError{Message: fmt.Sprintf("invalid sort direction %q", *req.SortDirection)}
		}
		current.SortDirection = *req.SortDirection
	}
	if req.RowsPerPage != nil {
		if !containsInt(entity.ValidRowsPerPage, *req.RowsPerPage) {
			return nil, PreferenceValidationError{Message: fmt.Sprintf("invalid rows per page %d", *req.RowsPerPage)}
		}
		current.RowsPerPage = *req.RowsPerPage
	}

	return s.repo.Upsert(ctx, current)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
