package dto

// UpdatePreferencesRequest captures partial preference updates; omitted
// fields keep their current value.
type UpdatePreferencesRequest struct {
	SortColumn    *string `json:"sort_column,omitempty"`
	SortDirection *string `json:"sort_direction,omitempty"`
	RowsPerPage   *int    `json:"rows_per_page,omitempty"`
}
