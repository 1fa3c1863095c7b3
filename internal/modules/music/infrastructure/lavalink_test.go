package infrastructure

import (
	"testing"
	"time"

	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

func TestStripScheme(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"wss://voice.discord.gg:443", "voice.discord.gg:443"},
		{"ws://voice.discord.gg", "voice.discord.gg"},
		{"voice.discord.gg:443", "voice.discord.gg:443"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripScheme(tt.endpoint); got != tt.want {
			t.Errorf("stripScheme(%q): expected %q, got %q", tt.endpoint, tt.want, got)
		}
	}
}

func TestConvertEndReason(t *testing.T) {
	tests := []struct {
		reason lavalink.TrackEndReason
		want   domain.TrackEndReason
	}{
		{lavalink.TrackEndReasonFinished, domain.TrackEndFinished},
		{lavalink.TrackEndReasonLoadFailed, domain.TrackEndLoadFailed},
		{lavalink.TrackEndReasonStopped, domain.TrackEndStopped},
		{lavalink.TrackEndReasonReplaced, domain.TrackEndReplaced},
		{lavalink.TrackEndReasonCleanup, domain.TrackEndCleanup},
	}

	for _, tt := range tests {
		if got := convertEndReason(tt.reason); got != tt.want {
			t.Errorf("convertEndReason(%q): expected %q, got %q", tt.reason, tt.want, got)
		}
	}
}

func TestConvertTrack(t *testing.T) {
	uri := "https://youtu.be/abc"
	track := lavalink.Track{
		Encoded: "enc",
		Info: lavalink.TrackInfo{
			Title:    "Song",
			Author:   "Artist",
			Length:   lavalink.Duration(125000),
			URI:      &uri,
			IsStream: false,
		},
	}

	info := convertTrack(track)
	if info.Encoded != "enc" || info.Title != "Song" || info.Author != "Artist" {
		t.Errorf("unexpected track info %+v", info)
	}
	if info.Duration != 125*time.Second {
		t.Errorf("expected duration 2m5s, got %v", info.Duration)
	}
	if info.URI != uri {
		t.Errorf("expected uri %q, got %q", uri, info.URI)
	}
}

func TestConvertTrackNilURI(t *testing.T) {
	info := convertTrack(lavalink.Track{Encoded: "enc"})
	if info.URI != "" {
		t.Errorf("expected empty uri, got %q", info.URI)
	}
}

func TestConvertLoadResult(t *testing.T) {
	t.Run("single track", func(t *testing.T) {
		result := convertLoadResult(&lavalink.LoadResult{
			LoadType: lavalink.LoadTypeTrack,
			Data:     lavalink.Track{Encoded: "enc"},
		})
		if result.Type != ports.LoadTypeTrack || len(result.Tracks) != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("playlist", func(t *testing.T) {
		result := convertLoadResult(&lavalink.LoadResult{
			LoadType: lavalink.LoadTypePlaylist,
			Data: lavalink.Playlist{
				Tracks: []lavalink.Track{{Encoded: "a"}, {Encoded: "b"}},
			},
		})
		if result.Type != ports.LoadTypePlaylist || len(result.Tracks) != 2 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("search", func(t *testing.T) {
		result := convertLoadResult(&lavalink.LoadResult{
			LoadType: lavalink.LoadTypeSearch,
			Data:     lavalink.Search{{Encoded: "a"}},
		})
		if result.Type != ports.LoadTypeSearch || len(result.Tracks) != 1 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("exception", func(t *testing.T) {
		result := convertLoadResult(&lavalink.LoadResult{
			LoadType: lavalink.LoadTypeError,
			Data:     lavalink.Exception{Message: "boom"},
		})
		if result.Type != ports.LoadTypeError {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("empty", func(t *testing.T) {
		result := convertLoadResult(&lavalink.LoadResult{
			LoadType: lavalink.LoadTypeEmpty,
			Data:     lavalink.Empty{},
		})
		if result.Type != ports.LoadTypeEmpty {
			t.Errorf("unexpected result %+v", result)
		}
	})
}

func TestVoiceEventBufferPairsEvents(t *testing.T) {
	channelID := snowflake.ID(4)

	t.Run("state then server", func(t *testing.T) {
		buffer := &voiceEventBuffer{}
		if buffer.setVoiceState(&channelID, "session") {
			t.Error("expected the first event not to complete the pair")
		}
		if !buffer.setVoiceServer("token", "endpoint") {
			t.Error("expected the second event to complete the pair")
		}

		gotChannel, sessionID, token, endpoint := buffer.getData()
		if gotChannel == nil || *gotChannel != channelID {
			t.Errorf("unexpected channel %v", gotChannel)
		}
		if sessionID != "session" || token != "token" || endpoint != "endpoint" {
			t.Errorf("unexpected data %q %q %q", sessionID, token, endpoint)
		}
	})

	t.Run("server then state", func(t *testing.T) {
		buffer := &voiceEventBuffer{}
		if buffer.setVoiceServer("token", "endpoint") {
			t.Error("expected the first event not to complete the pair")
		}
		if !buffer.setVoiceState(&channelID, "session") {
			t.Error("expected the second event to complete the pair")
		}
	})

	t.Run("getData resets the buffer", func(t *testing.T) {
		buffer := &voiceEventBuffer{}
		buffer.setVoiceState(&channelID, "session")
		buffer.setVoiceServer("token", "endpoint")
		buffer.getData()

		if buffer.setVoiceState(&channelID, "next") {
			t.Error("expected a drained buffer to wait for both events again")
		}
	})
}

func TestPendingVoiceConnection(t *testing.T) {
	pending := &pendingVoiceConnection{ready: make(chan struct{})}

	pending.onEvent(true)
	select {
	case <-pending.ready:
		t.Fatal("expected ready to wait for both events")
	default:
	}

	pending.onEvent(false)
	select {
	case <-pending.ready:
	default:
		t.Fatal("expected ready after both events")
	}

	pending.onEvent(true) // duplicate events must not panic
}
