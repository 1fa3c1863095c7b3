package usecases

import (
	"context"
	"errors"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
}

// VoiceStateInput is a normalized gateway voice-state change for one user.
type VoiceStateInput struct {
	GuildID      snowflake.ID
	UserID       snowflake.ID
	ChannelID    snowflake.ID // 0 means disconnected
	SelfDeaf     bool
	PrevSelfDeaf bool
}

// VoiceService handles voice channel membership: joining, leaving, and the
// occupancy policy derived from voice-state changes.
type VoiceService struct {
	botID       snowflake.ID
	registry    domain.SessionRegistry
	voiceConn   ports.VoiceConnection
	voiceState  ports.VoiceStateProvider
	audioPlayer ports.AudioPlayer
}

// NewVoiceService creates a new VoiceService.
func NewVoiceService(
	botID snowflake.ID,
	registry domain.SessionRegistry,
	voiceConn ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
	audioPlayer ports.AudioPlayer,
) *VoiceService {
	return &VoiceService{
		botID:       botID,
		registry:    registry,
		voiceConn:   voiceConn,
		voiceState:  voiceState,
		audioPlayer: audioPlayer,
	}
}

// Join connects the bot to the invoking user's current voice channel and
// creates the guild session if none exists. Creation is idempotent: a second
// join for the same channel only refreshes the response text channel.
func (v *VoiceService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	userChannel, err := v.voiceState.UserChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}
	if userChannel == 0 {
		return nil, ErrNoVoiceChannel
	}

	session, created := v.registry.GetOrCreate(input.GuildID, userChannel, input.TextChannelID)
	session.Lock()
	defer session.Unlock()

	if !created && session.VoiceChannelID() == userChannel {
		session.SetTextChannelID(input.TextChannelID)
		return &JoinOutput{VoiceChannelID: userChannel}, nil
	}

	if err := v.voiceConn.JoinChannel(ctx, input.GuildID, userChannel); err != nil {
		if created {
			v.registry.Delete(input.GuildID)
		}
		return nil, err
	}

	// Moving channels preserves the queue; only the channel ids change.
	session.SetVoiceChannelID(userChannel)
	session.SetTextChannelID(input.TextChannelID)

	return &JoinOutput{VoiceChannelID: userChannel}, nil
}

// Leave stops playback, clears the queue, disconnects, and tears down the
// guild session. Returns ErrNotConnected if no session exists.
func (v *VoiceService) Leave(ctx context.Context, guildID snowflake.ID) error {
	session := v.registry.Get(guildID)
	if session == nil {
		return ErrNotConnected
	}

	session.Lock()
	session.Queue().Clear()
	session.SetCurrent(nil)
	session.SetPaused(false)
	err := v.voiceConn.LeaveChannel(ctx, guildID)
	session.Unlock()

	v.registry.Delete(guildID)

	if err != nil {
		return err
	}
	return nil
}

// HandleVoiceStateUpdate runs the occupancy policy for a gateway voice-state
// change. The raw payload has already been forwarded to the node by the
// caller; this only derives pause/resume/leave actions:
//
//   - bot alone in its channel: leave and tear down the session
//   - bot plus two or more others: nothing
//   - bot plus exactly one other user: that user's self-deafen transitions
//     pause/resume the player; mismatched preconditions are silently ignored
func (v *VoiceService) HandleVoiceStateUpdate(ctx context.Context, input VoiceStateInput) {
	if input.UserID == v.botID {
		v.handleBotStateChange(input)
		return
	}

	botChannel, err := v.voiceState.BotChannel(input.GuildID)
	if err != nil {
		slog.Warn("failed to resolve bot voice state", "guild", input.GuildID, "error", err)
		return
	}
	if botChannel == 0 {
		return
	}

	count, err := v.voiceState.CountChannelMembers(input.GuildID, botChannel)
	if err != nil {
		slog.Warn("failed to count channel members", "guild", input.GuildID, "error", err)
		return
	}

	if count == 1 {
		// Only the bot left in voice
		if err := v.Leave(ctx, input.GuildID); err != nil && !errors.Is(err, ErrNotConnected) {
			slog.Warn("failed to leave empty voice channel",
				"guild", input.GuildID, "error", err)
			return
		}
		slog.Info("left empty voice channel", "guild", input.GuildID)
		return
	}
	if count > 2 {
		// Not just bot and a lone listener
		return
	}

	// Resume player when the lone listener undeafens
	if input.PrevSelfDeaf && !input.SelfDeaf {
		v.resumeIfPaused(ctx, input.GuildID)
	}

	// Pause player when the lone listener deafens
	if !input.PrevSelfDeaf && input.SelfDeaf {
		v.pauseIfPlaying(ctx, input.GuildID)
	}
}

// handleBotStateChange reacts to the bot's own voice state changing due to
// external factors (moved or disconnected by a user or by Discord).
func (v *VoiceService) handleBotStateChange(input VoiceStateInput) {
	session := v.registry.Get(input.GuildID)
	if session == nil {
		return
	}

	if input.ChannelID == 0 {
		// Bot was disconnected from voice
		session.Lock()
		session.Queue().Clear()
		session.SetCurrent(nil)
		session.SetPaused(false)
		session.Unlock()
		v.registry.Delete(input.GuildID)
		slog.Info("bot disconnected from voice, session removed", "guild", input.GuildID)
		return
	}

	session.Lock()
	if session.VoiceChannelID() != input.ChannelID {
		session.SetVoiceChannelID(input.ChannelID)
	}
	session.Unlock()
}

func (v *VoiceService) resumeIfPaused(ctx context.Context, guildID snowflake.ID) {
	session := v.registry.Get(guildID)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if !session.HasTrack() || !session.IsPaused() {
		return
	}

	if err := v.audioPlayer.SetPaused(ctx, guildID, false); err != nil {
		slog.Warn("failed to resume player", "guild", guildID, "error", err)
		return
	}
	session.SetPaused(false)

	slog.Info("track resumed on guild", "guild", guildID)
}

func (v *VoiceService) pauseIfPlaying(ctx context.Context, guildID snowflake.ID) {
	session := v.registry.Get(guildID)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if !session.IsPlaying() {
		return
	}

	if err := v.audioPlayer.SetPaused(ctx, guildID, true); err != nil {
		slog.Warn("failed to pause player", "guild", guildID, "error", err)
		return
	}
	session.SetPaused(true)

	slog.Info("track paused on guild", "guild", guildID)
}
