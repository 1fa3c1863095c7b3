package infrastructure

import (
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

// VoiceStateProvider reads voice states from the discordgo session cache.
type VoiceStateProvider struct {
	session *discordgo.Session
	botID   snowflake.ID
}

// NewVoiceStateProvider creates a new VoiceStateProvider.
func NewVoiceStateProvider(session *discordgo.Session, botID snowflake.ID) *VoiceStateProvider {
	return &VoiceStateProvider{
		session: session,
		botID:   botID,
	}
}

// UserChannel returns the voice channel the user is currently in,
// or 0 if the user is not in a voice channel.
func (v *VoiceStateProvider) UserChannel(guildID, userID snowflake.ID) (snowflake.ID, error) {
	guild, err := v.session.State.Guild(guildID.String())
	if err != nil {
		return 0, err
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID.String() && vs.ChannelID != "" {
			channelID, err := snowflake.Parse(vs.ChannelID)
			if err != nil {
				return 0, err
			}
			return channelID, nil
		}
	}

	return 0, nil
}

// BotChannel returns the voice channel the bot is currently in,
// or 0 if the bot is not connected.
func (v *VoiceStateProvider) BotChannel(guildID snowflake.ID) (snowflake.ID, error) {
	return v.UserChannel(guildID, v.botID)
}

// CountChannelMembers returns the number of distinct users (bot included)
// currently in the given voice channel.
func (v *VoiceStateProvider) CountChannelMembers(
	guildID, channelID snowflake.ID,
) (int, error) {
	guild, err := v.session.State.Guild(guildID.String())
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{})
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID.String() {
			seen[vs.UserID] = struct{}{}
		}
	}

	return len(seen), nil
}

// Ensure VoiceStateProvider implements ports.VoiceStateProvider.
var _ ports.VoiceStateProvider = (*VoiceStateProvider)(nil)
