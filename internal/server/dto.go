package server

import "github.com/starford/sift/internal/index"

// SearchHit is a single ranked match in the search response.
type SearchHit = index.Result

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	DocsCount  int `json:"docs_count"`
	TermsCount int `json:"terms_count"`
}
