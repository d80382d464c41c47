package models

// SearchQuery represents a search request.
type SearchQuery struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Validate normalizes the query fields: a missing limit defaults to 10,
// limits above 100 are capped, and negative offsets are clamped to 0.
// An empty query is valid and yields an empty result set, not an error.
func (q *SearchQuery) Validate() {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}
