package usecases

import (
	"context"
	"math/rand/v2"

	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

const watchBaseURL = "https://www.youtube.com/watch?v="

// ChillService picks one random video out of a curated playlist. The pick is
// uniform across the playlist's full result count: the first page reveals the
// total, a single index is drawn, then pages are walked until that index is
// reached.
type ChillService struct {
	lister     ports.PlaylistLister
	playlistID string
	randInt    func(n int) int
}

// NewChillService creates a new ChillService for the given playlist.
func NewChillService(lister ports.PlaylistLister, playlistID string) *ChillService {
	return &ChillService{
		lister:     lister,
		playlistID: playlistID,
		randInt:    rand.IntN,
	}
}

// PickRandomURL returns the watch URL of a uniformly chosen playlist item.
func (c *ChillService) PickRandomURL(ctx context.Context) (string, error) {
	index := -1
	pageToken := ""

	for {
		page, err := c.lister.ListPage(ctx, c.playlistID, pageToken)
		if err != nil {
			return "", err
		}

		if index == -1 {
			if page.TotalResults <= 0 {
				return "", ErrNoSearchResults
			}
			index = c.randInt(page.TotalResults)
		}

		if index < len(page.VideoIDs) {
			return watchBaseURL + page.VideoIDs[index], nil
		}

		index -= len(page.VideoIDs)
		if page.NextPageToken == "" {
			// Listing ended before the drawn index; the playlist shrank
			// between the count and the walk.
			return "", ErrNoSearchResults
		}
		pageToken = page.NextPageToken
	}
}
