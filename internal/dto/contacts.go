package dto

// ContactFilter contains query parameters for contact listing endpoints.
type ContactFilter struct {
	Q             string
	Tag           string
	Source        string
	SortColumn    string
	SortDirection string
	Page          int
	PerPage       int
}

// CreateContactRequest captures a manually entered contact.
type CreateContactRequest struct {
	FullName    string   `json:"full_name"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Company     *string  `json:"company,omitempty"`
	JobTitle    *string  `json:"job_title,omitempty"`
	LinkedInURL *string  `json:"linkedin_url,omitempty"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateContactRequest captures a full edit of an existing contact.
type UpdateContactRequest struct {
	FullName    string   `json:"full_name"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Company     *string  `json:"company,omitempty"`
	JobTitle    *string  `json:"job_title,omitempty"`
	LinkedInURL *string  `json:"linkedin_url,omitempty"`
	PhotoURL    *string  `json:"photo_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// BulkDeleteRequest names the contacts to remove in one call.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteResponse reports how many contacts were actually removed.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}
