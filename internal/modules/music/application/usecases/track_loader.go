package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// TrackLoaderService turns a user query into a playable track via the node's
// load primitive. URL-shaped queries pass through directly; anything else
// goes through keyword search and the first result is taken.
type TrackLoaderService struct {
	resolver ports.TrackResolver
}

// NewTrackLoaderService creates a new TrackLoaderService.
func NewTrackLoaderService(resolver ports.TrackResolver) *TrackLoaderService {
	return &TrackLoaderService{resolver: resolver}
}

// Resolve resolves a query to a single track requested by the given user.
func (t *TrackLoaderService) Resolve(
	ctx context.Context,
	query string,
	requesterID snowflake.ID,
) (*domain.Track, error) {
	searchQuery := domain.NewSearchQuery(query)
	if !searchQuery.IsValid() {
		return nil, ErrNoSearchResults
	}

	result, err := t.resolver.LoadTracks(ctx, searchQuery.LavalinkQuery())
	if err != nil {
		return nil, err
	}

	if result.Type == ports.LoadTypeEmpty || result.Type == ports.LoadTypeError ||
		len(result.Tracks) == 0 {
		return nil, ErrNoSearchResults
	}

	// Single track, playlist, or search result list: take the first entry.
	info := result.Tracks[0]

	return &domain.Track{
		Encoded:     info.Encoded,
		Title:       info.Title,
		Author:      info.Author,
		Duration:    info.Duration,
		URI:         info.URI,
		IsStream:    info.IsStream,
		RequesterID: requesterID,
	}, nil
}
