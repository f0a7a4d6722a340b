package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies how a contact entered the system.
type Source string

const (
	SourceManual      Source = "manual"
	SourceGoogle      Source = "google"
	SourceLinkedInCSV Source = "linkedin_csv"
)

// Valid reports whether the source is one of the known origins.
func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceGoogle, SourceLinkedInCSV:
		return true
	}
	return false
}

// Contact represents a single address-book entry owned by a user.
type Contact struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Company     *string   `json:"company,omitempty"`
	JobTitle    *string   `json:"job_title,omitempty"`
	LinkedInURL *string   `json:"linkedin_url,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	Source      Source    `json:"source"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
