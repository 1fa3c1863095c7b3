package infrastructure

import (
	"context"

	"github.com/ppalone/ytsearch"

	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

// maxSuggestions caps autocomplete responses at Discord's choice limit.
const maxSuggestions = 25

// YTSearchSuggester provides quick keyword suggestions for /play
// autocomplete without a node round trip.
type YTSearchSuggester struct {
	client *ytsearch.Client
}

// NewYTSearchSuggester creates a new YTSearchSuggester.
func NewYTSearchSuggester() *YTSearchSuggester {
	return &YTSearchSuggester{
		client: ytsearch.NewClient(nil),
	}
}

// Suggest returns search suggestions for the given query.
func (s *YTSearchSuggester) Suggest(
	ctx context.Context,
	query string,
) ([]ports.Suggestion, error) {
	result, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	suggestions := make([]ports.Suggestion, 0, len(result.Results))
	for _, video := range result.Results {
		if video.VideoID == "" {
			continue
		}
		suggestions = append(suggestions, ports.Suggestion{
			Title: video.Title,
			URL:   "https://www.youtube.com/watch?v=" + video.VideoID,
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	return suggestions, nil
}

// Ensure YTSearchSuggester implements ports.SearchSuggester.
var _ ports.SearchSuggester = (*YTSearchSuggester)(nil)
