package ports

import (
	"context"
	"time"
)

// TrackResolver defines the interface for loading/searching tracks on the node.
type TrackResolver interface {
	// LoadTracks resolves a query (direct URL or search-prefixed) to tracks.
	LoadTracks(ctx context.Context, query string) (*LoadResult, error)
}

// LoadType represents the type of load result.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadResult represents the result of loading tracks.
type LoadResult struct {
	Type   LoadType
	Tracks []*TrackInfo
}

// TrackInfo contains information about a loaded track.
type TrackInfo struct {
	Encoded  string
	Title    string
	Author   string
	Duration time.Duration
	URI      string
	IsStream bool
}
