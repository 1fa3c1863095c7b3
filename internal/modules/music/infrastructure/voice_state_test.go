package infrastructure

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

func newStateSession(t *testing.T, voiceStates []*discordgo.VoiceState) *discordgo.Session {
	t.Helper()
	session := &discordgo.Session{State: discordgo.NewState()}
	err := session.State.GuildAdd(&discordgo.Guild{
		ID:          "1",
		VoiceStates: voiceStates,
	})
	if err != nil {
		t.Fatalf("failed to seed guild state: %v", err)
	}
	return session
}

func TestVoiceStateProviderUserChannel(t *testing.T) {
	session := newStateSession(t, []*discordgo.VoiceState{
		{UserID: "42", ChannelID: "4"},
		{UserID: "43", ChannelID: ""},
	})
	provider := NewVoiceStateProvider(session, snowflake.ID(99))

	channel, err := provider.UserChannel(snowflake.ID(1), snowflake.ID(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channel != snowflake.ID(4) {
		t.Errorf("expected channel 4, got %d", channel)
	}

	channel, err = provider.UserChannel(snowflake.ID(1), snowflake.ID(43))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channel != 0 {
		t.Errorf("expected 0 for a disconnected user, got %d", channel)
	}

	channel, err = provider.UserChannel(snowflake.ID(1), snowflake.ID(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channel != 0 {
		t.Errorf("expected 0 for an unknown user, got %d", channel)
	}
}

func TestVoiceStateProviderBotChannel(t *testing.T) {
	session := newStateSession(t, []*discordgo.VoiceState{
		{UserID: "99", ChannelID: "4"},
	})
	provider := NewVoiceStateProvider(session, snowflake.ID(99))

	channel, err := provider.BotChannel(snowflake.ID(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channel != snowflake.ID(4) {
		t.Errorf("expected channel 4, got %d", channel)
	}
}

func TestVoiceStateProviderCountChannelMembers(t *testing.T) {
	session := newStateSession(t, []*discordgo.VoiceState{
		{UserID: "99", ChannelID: "4"},
		{UserID: "42", ChannelID: "4"},
		{UserID: "43", ChannelID: "5"},
	})
	provider := NewVoiceStateProvider(session, snowflake.ID(99))

	count, err := provider.CountChannelMembers(snowflake.ID(1), snowflake.ID(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 members, got %d", count)
	}

	count, err = provider.CountChannelMembers(snowflake.ID(1), snowflake.ID(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected an empty channel, got %d", count)
	}
}

func TestVoiceStateProviderUnknownGuild(t *testing.T) {
	session := &discordgo.Session{State: discordgo.NewState()}
	provider := NewVoiceStateProvider(session, snowflake.ID(99))

	if _, err := provider.UserChannel(snowflake.ID(404), snowflake.ID(42)); err == nil {
		t.Error("expected an error for an unknown guild")
	}
}
