package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/rolodexhq/rolodex/api/internal/dto"
	"github.com/rolodexhq/rolodex/api/internal/entity"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service/importer"
)

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)

// ContactValidationError indicates that a contact payload is invalid.
type ContactValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ContactValidationError) Error() string {
	return e.Message
}

// ContactsService exposes read/write operations for a user's address book.
type ContactsService struct {
	repo        repository.ContactsRepository
	prefs       repository.PreferencesRepository
	phoneRegion string
}

// NewContactsService creates a new instance of ContactsService.
func NewContactsService(repo repository.ContactsRepository, prefs repository.PreferencesRepository, phoneRegion string) *ContactsService {
	region := strings.ToUpper(strings.TrimSpace(phoneRegion))
	if region == "" {
		region = "US"
	}
	return &ContactsService{repo: repo, prefs: prefs, phoneRegion: region}
}

// ListContacts returns contacts respecting the filter; sort and page size
// fall back to the user's saved preferences.
func (s *ContactsService) ListContacts(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, error) {
	if filter.SortColumn == "" || filter.PerPage == 0 {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, repository.ErrPreferencesNotFound) {
				return nil, err
			}
			prefs = entity.DefaultPreferences(userID)
		}
		if filter.SortColumn == "" {
			filter.SortColumn = prefs.SortColumn
			if filter.SortDirection == "" {
				filter.SortDirection = prefs.SortDirection
			}
		}
		if filter.PerPage == 0 {
			filter.PerPage = prefs.RowsPerPage
		}
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.repo.List(ctx, userID, filter)
}

// GetContact returns a single contact owned by the user.
func (s *ContactsService) GetContact(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// CreateContact validates and persists a manually entered contact.
func (s *ContactsService) CreateContact(ctx context.Context, userID uuid.UUID, req dto.CreateContactRequest) (*entity.Contact, error) {
	contact := &entity.Contact{
		UserID:      userID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     normalizeField(req.Company),
		JobTitle:    normalizeField(req.JobTitle),
		LinkedInURL: normalizeField(req.LinkedInURL),
		PhotoURL:    normalizeField(req.PhotoURL),
		Source:      entity.SourceManual,
		Tags:        req.Tags,
	}
	if contact.Tags == nil {
		contact.Tags = importer.InferTags(contact.JobTitle, contact.Company)
	}

	if err := s.validate(contact); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact validates and rewrites an existing contact.
func (s *ContactsService) UpdateContact(ctx context.Context, userID, id uuid.UUID, req dto.UpdateContactRequest) (*entity.Contact, error) {
	existing, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	existing.FullName = strings.TrimSpace(req.FullName)
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Company = normalizeField(req.Company)
	existing.JobTitle = normalizeField(req.JobTitle)
	existing.LinkedInURL = normalizeField(req.LinkedInURL)
	existing.PhotoURL = normalizeField(req.PhotoURL)
	existing.Tags = req.Tags

	if err := s.validate(existing); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteContact removes one contact.
func (s *ContactsService) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// BulkDeleteContacts removes the named contacts and reports how many rows
// actually went away.
func (s *ContactsService) BulkDeleteContacts(ctx context.Context, userID uuid.UUID, rawIDs []string) (int, error) {
	if len(rawIDs) == 0 {
		return 0, ContactValidationError{Message: "no contact ids provided"}
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, ContactValidationError{Message: fmt.Sprintf("invalid contact id %q", raw)}
		}
		ids = append(ids, id)
	}

	return s.repo.DeleteMany(ctx, userID, ids)
}

// validate applies field rules and normalizes email and phone in place.
func (s *ContactsService) validate(contact *entity.Contact) error {
	if contact.FullName == "" {
		return ContactValidationError{Message: "full name is required"}
	}

	if contact.Email != nil {
		email, err := cleanEmail(*contact.Email)
		if err != nil {
			return err
		}
		contact.Email = email
	}

	if contact.Phone != nil {
		contact.Phone = s.cleanPhone(*contact.Phone)
	}

	return nil
}

// cleanEmail lowercases and validates an email address. The domain goes
// through IDNA mapping so internationalized domains are accepted.
func cleanEmail(raw string) (*string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return nil, nil
	}

	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 {
		if ascii, err := idna.Lookup.ToASCII(parts[1]); err == nil && ascii != "" {
			email = parts[0] + "@" + ascii
		}
	}

	if !emailPattern.MatchString(email) {
		return nil, ContactValidationError{Message: fmt.Sprintf("invalid email address %q", raw)}
	}
	return &email, nil
}

// cleanPhone formats a phone number to E.164 when it parses; otherwise the
// raw value is kept. Contact books are full of shorthand numbers and
// rejecting them would lose data.
func (s *ContactsService) cleanPhone(raw string) *string {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(phone, s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return &phone
	}
	formatted := phonenumbers.Format(parsed, phonenumbers.E164)
	return &formatted
}

func normalizeField(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var exportHeader = []string{"Full Name", "Email", "Company", "Job Title", "LinkedIn URL", "Phone", "Tags", "Source", "Created At"}

// ExportCSV writes the user's whole address book as CSV, sorted by name.
func (s *ContactsService) ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	contacts, err := s.repo.List(ctx, userID, dto.ContactFilter{
		SortColumn:    "full_name",
		SortDirection: "asc",
		PerPage:       entity.RowsPerPageAll,
	})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, contact := range contacts {
		record := []string{
			contact.FullName,
			stringOrEmpty(contact.Email),
			stringOrEmpty(contact.Company),
			stringOrEmpty(contact.JobTitle),
			stringOrEmpty(contact.LinkedInURL),
			stringOrEmpty(contact.Phone),
			strings.Join(contact.Tags, ", "),
			string(contact.Source),
			contact.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFilename returns the attachment name for a CSV download.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("contacts-%s.csv", now.Format("2006-01-02"))
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
