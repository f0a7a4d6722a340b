package entity

import (
	"time"

	"github.com/google/uuid"
)

// RowsPerPageAll is the sentinel meaning "no pagination, show everything".
const RowsPerPageAll = -1

// Preferences captures per-user table display settings.
type Preferences struct {
	UserID        uuid.UUID `json:"user_id"`
	SortColumn    string    `json:"sort_column"`
	SortDirection string    `json:"sort_direction"`
	RowsPerPage   int       `json:"rows_per_page"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DefaultPreferences returns the settings applied to users who never saved any.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:        userID,
		SortColumn:    "tags",
		SortDirection: "desc",
		RowsPerPage:   50,
	}
}

// ValidSortColumns are the contact table columns the UI can sort by.
var ValidSortColumns = []string{"full_name", "company", "tags", "source"}

// ValidRowsPerPage are the accepted page sizes; RowsPerPageAll disables paging.
var ValidRowsPerPage = []int{50, 100, 1000, RowsPerPageAll}
