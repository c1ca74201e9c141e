package entity

// FilterMode selects which slice of the calendar a listing covers.
type FilterMode string

const (
	FilterUpcoming FilterMode = "upcoming"
	FilterPast     FilterMode = "past"
	FilterAll      FilterMode = "all"
)

// ParseFilterMode maps a query-parameter value onto a filter mode. An empty
// value means the caller did not override the default; any other unknown
// value falls through to FilterAll, matching the rendered listing pages.
func ParseFilterMode(s string) FilterMode {
	switch s {
	case "", string(FilterUpcoming):
		return FilterUpcoming
	case string(FilterPast):
		return FilterPast
	default:
		return FilterAll
	}
}

// ListingRequest describes one page of an event listing. It is ephemeral
// and never persisted.
type ListingRequest struct {
	Filter   FilterMode `json:"filter"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// MaxPageSize caps the per-request page size so a client cannot pull the
// whole table through the per_page parameter.
const MaxPageSize = 100

// Normalize fills defaults and clamps out-of-range values: page >= 1,
// 1 <= page size <= MaxPageSize (falling back to defaultPageSize, itself
// defaulting to 10), filter defaulting to upcoming.
func (r ListingRequest) Normalize(defaultPageSize int) ListingRequest {
	if r.Filter == "" {
		r.Filter = FilterUpcoming
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = defaultPageSize
	}
	if r.PageSize < 1 {
		r.PageSize = 10
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// ListingResult is one page of events plus the pagination metadata the
// incremental loader needs.
type ListingResult struct {
	Events      []EventView `json:"events"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
}

// TotalPages computes ceil(total/pageSize), floored at 1 so that an empty
// listing still renders a single (empty) page.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
