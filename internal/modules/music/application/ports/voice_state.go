package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider exposes the gateway's voice-state cache.
type VoiceStateProvider interface {
	// UserChannel returns the voice channel the user is currently in,
	// or 0 if the user is not in a voice channel.
	UserChannel(guildID, userID snowflake.ID) (snowflake.ID, error)

	// BotChannel returns the voice channel the bot is currently in,
	// or 0 if the bot is not in a voice channel.
	BotChannel(guildID snowflake.ID) (snowflake.ID, error)

	// CountChannelMembers returns the number of distinct users (bot included)
	// currently in the given voice channel.
	CountChannelMembers(guildID, channelID snowflake.ID) (int, error)
}
