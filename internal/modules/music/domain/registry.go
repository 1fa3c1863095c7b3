package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// SessionRegistry maps guild ids to playback sessions.
// At most one session exists per guild at any time.
type SessionRegistry interface {
	// Get returns the session for the given guild, or nil if none exists.
	Get(guildID snowflake.ID) *Session

	// GetOrCreate returns the existing session for the guild, or creates and
	// stores a new one with the given channels. The second return value is
	// true if a new session was created.
	GetOrCreate(guildID, voiceChannelID, textChannelID snowflake.ID) (*Session, bool)

	// Delete removes the session for the given guild.
	Delete(guildID snowflake.ID)
}
