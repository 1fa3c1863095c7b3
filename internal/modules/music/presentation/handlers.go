package presentation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/bot"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/usecases"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// Embed colors.
const (
	colorStop   = 0xd25557
	colorPause  = 0xf9c62b
	colorResume = 0x76ffa1
	colorQueue  = 0x76ffa1
)

// CommandHandlers holds all music command handlers.
type CommandHandlers struct {
	voice    *usecases.VoiceService
	playback *usecases.PlaybackService
	queue    *usecases.QueueService
	loader   *usecases.TrackLoaderService
	chill    *usecases.ChillService
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(
	voice *usecases.VoiceService,
	playback *usecases.PlaybackService,
	queue *usecases.QueueService,
	loader *usecases.TrackLoaderService,
	chill *usecases.ChillService,
) *CommandHandlers {
	return &CommandHandlers{
		voice:    voice,
		playback: playback,
		queue:    queue,
		loader:   loader,
		chill:    chill,
	}
}

// HandlePlay handles the /play command.
func (h *CommandHandlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}

	return h.play(i, r, query)
}

// HandleChill handles the /chill command: a random pick from the curated
// playlist, resolved exactly like a URL play.
func (h *CommandHandlers) HandleChill(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	url, err := h.chill.PickRandomURL(context.Background())
	if err != nil {
		if errors.Is(err, usecases.ErrNoSearchResults) {
			return respondWarning(r, "Could not pick a song from the chill playlist!")
		}
		return err
	}

	return h.play(i, r, url)
}

// play joins the invoking user's voice channel if needed, resolves the query,
// and starts or enqueues the resulting track.
func (h *CommandHandlers) play(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	query string,
) error {
	ctx := context.Background()

	guildID, userID, channelID, err := interactionIDs(i)
	if err != nil {
		return err
	}

	_, err = h.voice.Join(ctx, usecases.JoinInput{
		GuildID:       guildID,
		UserID:        userID,
		TextChannelID: channelID,
	})
	if err != nil {
		if errors.Is(err, usecases.ErrNoVoiceChannel) {
			return respondWarning(r, "You are not in a voice channel!")
		}
		return err
	}

	track, err := h.loader.Resolve(ctx, query, userID)
	if err != nil {
		if errors.Is(err, usecases.ErrNoSearchResults) {
			return respondWarning(r, "No results found for: "+query)
		}
		return err
	}

	output, err := h.playback.Enqueue(ctx, guildID, track)
	if err != nil {
		return err
	}

	if output.Started {
		return respondEmbed(r, fmt.Sprintf(":notes: Now playing: %s", trackLink(track)),
			colorResume)
	}
	return respondEmbed(r,
		fmt.Sprintf(":notes: Added to queue: %s (position %d)", trackLink(track),
			output.Position),
		colorQueue)
}

// HandleJoin handles the /join command.
func (h *CommandHandlers) HandleJoin(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, userID, channelID, err := interactionIDs(i)
	if err != nil {
		return err
	}

	output, err := h.voice.Join(context.Background(), usecases.JoinInput{
		GuildID:       guildID,
		UserID:        userID,
		TextChannelID: channelID,
	})
	if err != nil {
		if errors.Is(err, usecases.ErrNoVoiceChannel) {
			return respondWarning(r, "You are not in a voice channel!")
		}
		return err
	}

	return respondMessage(r, fmt.Sprintf("Joined <#%d>", output.VoiceChannelID))
}

// HandleLeave handles the /leave command.
func (h *CommandHandlers) HandleLeave(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	if err := h.voice.Leave(context.Background(), guildID); err != nil {
		if errors.Is(err, usecases.ErrNotConnected) {
			return respondWarning(r, "Bot is not currently in any voice channel!")
		}
		return err
	}

	return respondMessage(r, "Left voice channel")
}

// HandleStop handles the /stop command.
func (h *CommandHandlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	if err := h.playback.Stop(context.Background(), guildID); err != nil {
		if errors.Is(err, usecases.ErrNothingToStop) {
			return respondWarning(r, "Nothing to stop")
		}
		return err
	}

	return respondEmbed(r, ":stop_button: Stopped playing", colorStop)
}

// HandleSkip handles the /skip command.
func (h *CommandHandlers) HandleSkip(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	output, err := h.playback.Skip(context.Background(), guildID)
	if err != nil {
		if errors.Is(err, usecases.ErrNothingToSkip) {
			return respondWarning(r, "Nothing to skip")
		}
		return err
	}

	return respondEmbed(r,
		fmt.Sprintf(":fast_forward: Skipped: %s", trackLink(output.Skipped)),
		colorStop)
}

// HandlePause handles the /pause command.
func (h *CommandHandlers) HandlePause(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	if err := h.playback.Pause(context.Background(), guildID); err != nil {
		if errors.Is(err, usecases.ErrNotPlaying) {
			return respondWarning(r, "Player is not currently playing!")
		}
		return err
	}

	return respondEmbed(r, ":pause_button: Paused player", colorPause)
}

// HandleResume handles the /resume command.
func (h *CommandHandlers) HandleResume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	if err := h.playback.Resume(context.Background(), guildID); err != nil {
		if errors.Is(err, usecases.ErrNotPaused) {
			return respondWarning(r, "Player is not currently paused!")
		}
		return err
	}

	return respondEmbed(r, ":arrow_forward: Resumed player", colorResume)
}

// HandleQueue handles the /queue command.
func (h *CommandHandlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return err
	}

	view, err := h.queue.Peek(context.Background(), guildID)
	if err != nil {
		if errors.Is(err, usecases.ErrNotPlaying) {
			return respondWarning(r, "Player is not currently playing")
		}
		return err
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "🎶 Queue",
					Description: RenderQueue(view),
					Color:       colorQueue,
				},
			},
		},
	})
}

// RenderQueue renders a queue view as an embed description: the current
// track, then up to ten upcoming tracks numbered from 1.
func RenderQueue(view *usecases.QueueView) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Current:** %s `%s` [<@!%d>]",
		trackLink(view.Current),
		view.Current.FormattedDuration(),
		view.Current.RequesterID,
	)

	for n, track := range view.Upcoming {
		if n == 0 {
			sb.WriteString("\n\n**Up next:**")
		}
		fmt.Fprintf(&sb, "\n[%d. %s](%s) `%s` [<@!%d>]",
			n+1,
			track.Title,
			track.URI,
			track.FormattedDuration(),
			track.RequesterID,
		)
	}

	return sb.String()
}

// interactionIDs extracts the guild, user, and text channel ids of a guild
// interaction.
func interactionIDs(
	i *discordgo.InteractionCreate,
) (guildID, userID, channelID snowflake.ID, err error) {
	guildID, err = snowflake.Parse(i.GuildID)
	if err != nil {
		return 0, 0, 0, err
	}

	userID, err = snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return 0, 0, 0, err
	}

	channelID, err = snowflake.Parse(i.ChannelID)
	if err != nil {
		return 0, 0, 0, err
	}

	return guildID, userID, channelID, nil
}

func trackLink(track *domain.Track) string {
	return fmt.Sprintf("[%s](%s)", track.Title, track.URI)
}

func respondMessage(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondWarning(r bot.Responder, content string) error {
	return respondMessage(r, ":warning: "+content)
}

func respondEmbed(r bot.Responder, description string, color int) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: description,
					Color:       color,
				},
			},
		},
	})
}
