package models

// SearchResult is a single search hit. Score is the tier-based rank
// assigned by the engine; lower is better, 0 means an exact match.
type SearchResult struct {
	ID      int64   `json:"id"`
	Word    string  `json:"word"`
	POS     string  `json:"pos"`
	Preview string  `json:"preview"`
	Score   float64 `json:"score"`
}

// SearchResponse is the response envelope for a search request.
type SearchResponse struct {
	Results   []SearchResult `json:"results"`
	Total     int            `json:"total"`
	QueryTime int64          `json:"query_time_ms"`
	Query     string         `json:"query"`
}
