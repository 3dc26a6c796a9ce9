package repository

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// OrderClause returns a safe ORDER BY expression, falling back when the
// requested column is not in the allow list.
func (q *ListQuery) OrderClause(allowed map[string]bool, fallback string) string {
	if q.SortBy == "" || !allowed[q.SortBy] {
		return fallback
	}
	if q.SortDir == "desc" {
		return q.SortBy + " DESC"
	}
	return q.SortBy + " ASC"
}
