package ports

import (
	"context"
)

// Suggestion is a single search suggestion for command autocomplete.
type Suggestion struct {
	Title string
	URL   string
}

// SearchSuggester returns quick keyword-search suggestions without a node
// round trip, used for /play autocomplete.
type SearchSuggester interface {
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}
