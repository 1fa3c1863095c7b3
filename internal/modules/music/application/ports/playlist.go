package ports

import (
	"context"
)

// PlaylistPage is one page of a paginated playlist listing.
type PlaylistPage struct {
	VideoIDs      []string
	NextPageToken string
	TotalResults  int
}

// PlaylistLister lists the items of a named playlist page by page.
type PlaylistLister interface {
	// ListPage returns one page of the playlist. Pass an empty pageToken for
	// the first page; follow NextPageToken for subsequent pages.
	ListPage(ctx context.Context, playlistID, pageToken string) (*PlaylistPage, error)
}
