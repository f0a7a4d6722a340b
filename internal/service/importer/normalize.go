package importer

import (
	"strings"

	"google.golang.org/api/people/v1"

	"github.com/rolodexhq/rolodex/api/internal/entity"
)

// Candidate is a normalized contact that has not been deduplicated or
// persisted yet. Absent fields are nil, never the empty string.
type Candidate struct {
	FullName    string
	Email       *string
	Phone       *string
	Company     *string
	JobTitle    *string
	LinkedInURL *string
	PhotoURL    *string
	Source      entity.Source
	Tags        []string
}

// FromPerson converts a People API person into a candidate. Records without
// a display name are unusable and yield nil.
func FromPerson(person *people.Person) *Candidate {
	if person == nil || len(person.Names) == 0 {
		return nil
	}

	name := strings.TrimSpace(person.Names[0].DisplayName)
	if name == "" {
		return nil
	}

	candidate := &Candidate{
		FullName: name,
		Source:   entity.SourceGoogle,
	}

	if len(person.EmailAddresses) > 0 {
		candidate.Email = optional(person.EmailAddresses[0].Value)
	}
	if len(person.PhoneNumbers) > 0 {
		candidate.Phone = optional(person.PhoneNumbers[0].Value)
	}
	if len(person.Organizations) > 0 {
		org := person.Organizations[0]
		candidate.Company = optional(org.Name)
		candidate.JobTitle = optional(org.Title)
	}
	if len(person.Photos) > 0 {
		candidate.PhotoURL = optional(person.Photos[0].Url)
	}

	return candidate
}

// Column names expected in a LinkedIn connections export.
const (
	columnFirstName = "First Name"
	columnLastName  = "Last Name"
	columnEmail     = "Email Address"
	columnCompany   = "Company"
	columnPosition  = "Position"
	columnURL       = "URL"
)

// FromExportRow converts a parsed CSV row into a candidate. Rows without a
// usable name yield nil.
func FromExportRow(row map[string]string) *Candidate {
	name := strings.TrimSpace(row[columnFirstName] + " " + row[columnLastName])
	if name == "" {
		return nil
	}

	return &Candidate{
		FullName:    name,
		Email:       optional(row[columnEmail]),
		Company:     optional(row[columnCompany]),
		JobTitle:    optional(row[columnPosition]),
		LinkedInURL: optional(row[columnURL]),
		Source:      entity.SourceLinkedInCSV,
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
