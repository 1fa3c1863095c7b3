package presentation

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/usecases"
)

// EventHandlers translates Discord gateway events into occupancy-policy
// inputs. The raw payloads are forwarded to the node separately by the
// module wiring; this layer only feeds the voice service.
type EventHandlers struct {
	voice *usecases.VoiceService
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(voice *usecases.VoiceService) *EventHandlers {
	return &EventHandlers{voice: voice}
}

// HandleVoiceStateUpdate handles VoiceStateUpdate events for any user.
func (h *EventHandlers) HandleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	userID, err := snowflake.Parse(event.UserID)
	if err != nil {
		slog.Error("failed to parse user ID in voice state update", "error", err)
		return
	}

	var channelID snowflake.ID
	if event.ChannelID != "" {
		channelID, err = snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
	}

	prevSelfDeaf := false
	if event.BeforeUpdate != nil {
		prevSelfDeaf = event.BeforeUpdate.SelfDeaf
	}

	h.voice.HandleVoiceStateUpdate(context.Background(), usecases.VoiceStateInput{
		GuildID:      guildID,
		UserID:       userID,
		ChannelID:    channelID,
		SelfDeaf:     event.SelfDeaf,
		PrevSelfDeaf: prevSelfDeaf,
	})
}
