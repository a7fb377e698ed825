package models

import "strings"

// SearchQuery represents a search request.
type SearchQuery struct {
	Query string `json:"query"`
	// Fuzzy permits a typo-tolerant verse retry when the exact passes match nothing.
	Fuzzy bool `json:"fuzzy,omitempty"`
}

// Normalize trims surrounding whitespace from the query text. Length and
// content checks belong to the engine, which never fails a well-formed query.
func (q *SearchQuery) Normalize() {
	q.Query = strings.TrimSpace(q.Query)
}
