package infrastructure

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

// playlistPageSize is the YouTube Data API maximum page size.
const playlistPageSize = 50

// YouTubePlaylistLister lists playlist items through the YouTube Data API.
// Page fetches are rate limited to stay inside the API quota when walking
// long playlists.
type YouTubePlaylistLister struct {
	service *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubePlaylistLister creates a lister authenticated with the given API key.
func NewYouTubePlaylistLister(ctx context.Context, apiKey string) (*YouTubePlaylistLister, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubePlaylistLister{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}, nil
}

// ListPage returns one page of the playlist.
func (l *YouTubePlaylistLister) ListPage(
	ctx context.Context,
	playlistID, pageToken string,
) (*ports.PlaylistPage, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := l.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(playlistPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist items: %w", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		videoIDs = append(videoIDs, item.Snippet.ResourceId.VideoId)
	}

	return &ports.PlaylistPage{
		VideoIDs:      videoIDs,
		NextPageToken: response.NextPageToken,
		TotalResults:  int(response.PageInfo.TotalResults),
	}, nil
}

// Ensure YouTubePlaylistLister implements ports.PlaylistLister.
var _ ports.PlaylistLister = (*YouTubePlaylistLister)(nil)
