package domain

import (
	"regexp"
	"strings"
)

// urlPattern matches queries that should be passed to the node as-is
// instead of going through keyword search.
var urlPattern = regexp.MustCompile(`^https?://(www\.)?.+`)

// SearchSource represents the source prefix for keyword search.
type SearchSource string

const (
	// SourceYouTube searches YouTube.
	SourceYouTube SearchSource = "ytsearch"
	// SourceDirect indicates a direct URL (no search prefix).
	SourceDirect SearchSource = ""
)

// SearchQuery represents a user query for loading tracks.
type SearchQuery struct {
	Query  string       // The search term or URL
	Source SearchSource // The search source
	IsURL  bool         // Whether the query is a direct URL
}

// NewSearchQuery creates a SearchQuery from user input.
// URL-shaped input is passed through directly; anything else goes through
// YouTube keyword search.
func NewSearchQuery(input string) *SearchQuery {
	input = strings.TrimSpace(input)

	if urlPattern.MatchString(input) {
		return &SearchQuery{
			Query:  input,
			Source: SourceDirect,
			IsURL:  true,
		}
	}

	return &SearchQuery{
		Query:  input,
		Source: SourceYouTube,
		IsURL:  false,
	}
}

// LavalinkQuery returns the query string formatted for the node's load primitive.
func (q *SearchQuery) LavalinkQuery() string {
	if q.IsURL {
		return q.Query
	}
	return string(q.Source) + ":" + q.Query
}

// IsValid returns true if the query is not empty.
func (q *SearchQuery) IsValid() bool {
	return q.Query != ""
}
