package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// AudioPlayer defines the operations available on the remote node's player
// handle for a guild.
type AudioPlayer interface {
	// Play starts playback of the given track, replacing whatever is playing.
	Play(ctx context.Context, guildID snowflake.ID, track *domain.Track) error

	// Stop halts the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// SetPaused pauses or resumes the current playback.
	SetPaused(ctx context.Context, guildID snowflake.ID, paused bool) error
}
