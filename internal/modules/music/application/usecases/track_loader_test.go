package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

func TestTrackLoaderServiceResolve(t *testing.T) {
	t.Run("passes URLs through and takes the first result", func(t *testing.T) {
		resolver := &mockTrackResolver{
			loadResult: &ports.LoadResult{
				Type: ports.LoadTypeTrack,
				Tracks: []*ports.TrackInfo{{
					Encoded:  "enc",
					Title:    "Song",
					Author:   "Artist",
					Duration: 3 * time.Minute,
					URI:      "https://youtu.be/abc",
				}},
			},
		}
		service := NewTrackLoaderService(resolver)

		track, err := service.Resolve(
			context.Background(), "https://youtu.be/abc", userID,
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resolver.queries) != 1 || resolver.queries[0] != "https://youtu.be/abc" {
			t.Errorf("expected the URL to pass through unchanged, got %v", resolver.queries)
		}
		if track.Title != "Song" || track.Author != "Artist" {
			t.Errorf("unexpected track %+v", track)
		}
		if track.RequesterID != userID {
			t.Errorf("expected requester %d, got %d", userID, track.RequesterID)
		}
	})

	t.Run("prefixes keyword queries with youtube search", func(t *testing.T) {
		resolver := &mockTrackResolver{
			loadResult: &ports.LoadResult{
				Type: ports.LoadTypeSearch,
				Tracks: []*ports.TrackInfo{
					{Title: "First Hit"},
					{Title: "Second Hit"},
				},
			},
		}
		service := NewTrackLoaderService(resolver)

		track, err := service.Resolve(context.Background(), "lofi beats", userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resolver.queries) != 1 || resolver.queries[0] != "ytsearch:lofi beats" {
			t.Errorf("expected ytsearch prefix, got %v", resolver.queries)
		}
		if track.Title != "First Hit" {
			t.Errorf("expected the first search result, got %q", track.Title)
		}
	})

	t.Run("returns ErrNoSearchResults for empty loads", func(t *testing.T) {
		for name, result := range map[string]*ports.LoadResult{
			"empty":     {Type: ports.LoadTypeEmpty},
			"error":     {Type: ports.LoadTypeError},
			"no tracks": {Type: ports.LoadTypeSearch},
		} {
			t.Run(name, func(t *testing.T) {
				service := NewTrackLoaderService(&mockTrackResolver{loadResult: result})

				_, err := service.Resolve(context.Background(), "nothing", userID)
				if !errors.Is(err, ErrNoSearchResults) {
					t.Errorf("expected ErrNoSearchResults, got %v", err)
				}
			})
		}
	})

	t.Run("propagates resolver errors", func(t *testing.T) {
		loadErr := errors.New("node unavailable")
		service := NewTrackLoaderService(&mockTrackResolver{loadErr: loadErr})

		_, err := service.Resolve(context.Background(), "query", userID)
		if !errors.Is(err, loadErr) {
			t.Errorf("expected the resolver error, got %v", err)
		}
	})
}
