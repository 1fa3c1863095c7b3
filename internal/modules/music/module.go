package music

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/bot"
	"github.com/ntvinh11/chillbot/internal/modules/music/application"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/events"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/usecases"
	"github.com/ntvinh11/chillbot/internal/modules/music/infrastructure"
	"github.com/ntvinh11/chillbot/internal/modules/music/presentation"
)

func init() {
	bot.Register(&MusicModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicModule)(nil)

// MusicModule provides music playback through a remote Lavalink node.
type MusicModule struct {
	config *Config

	commandHandlers *presentation.CommandHandlers
	autocomplete    *presentation.AutocompleteHandler
	gatewayEvents   *presentation.EventHandlers

	adapter *infrastructure.LavalinkAdapter
	bus     *events.Bus
	bridge  *application.RemoteEventBridge

	// Context for the event bridge
	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *MusicModule) Name() string {
	return "music"
}

// Commands returns the slash commands for this module.
func (m *MusicModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":   m.commandHandlers.HandlePlay,
		"join":   m.commandHandlers.HandleJoin,
		"leave":  m.commandHandlers.HandleLeave,
		"stop":   m.commandHandlers.HandleStop,
		"skip":   m.commandHandlers.HandleSkip,
		"pause":  m.commandHandlers.HandlePause,
		"resume": m.commandHandlers.HandleResume,
		"queue":  m.commandHandlers.HandleQueue,
		"chill":  m.commandHandlers.HandleChill,
	}
}

// EventHandlers returns the gateway event handlers for this module.
func (m *MusicModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
		func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			m.handleInteractionCreate(s, i)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if cfg.ChillPlaylistID == "" {
		cfg.ChillPlaylistID = chillPlaylistID
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		return fmt.Errorf("music module requires a Discord session")
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.bus = events.NewBus(events.DefaultEventBufferSize)

	adapter, err := infrastructure.NewLavalinkAdapter(deps.Session, m.bus, infrastructure.LavalinkConfig{
		Address:  m.config.LavalinkAddress,
		Password: m.config.LavalinkPassword,
	})
	if err != nil {
		return err
	}
	m.adapter = adapter

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}

	registry := infrastructure.NewMemorySessionRegistry()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session, botID)
	presence := infrastructure.NewPresenceAdapter(deps.Session)

	lister, err := infrastructure.NewYouTubePlaylistLister(m.ctx, m.config.YouTubeAPIKey)
	if err != nil {
		return err
	}

	voice := usecases.NewVoiceService(botID, registry, adapter, voiceState, adapter)
	playback := usecases.NewPlaybackService(registry, adapter)
	queue := usecases.NewQueueService(registry)
	loader := usecases.NewTrackLoaderService(adapter)
	chill := usecases.NewChillService(lister, m.config.ChillPlaylistID)

	m.bridge = application.NewRemoteEventBridge(m.bus, registry, playback, presence)
	go m.bridge.Run(m.ctx)

	m.commandHandlers = presentation.NewCommandHandlers(voice, playback, queue, loader, chill)
	m.autocomplete = presentation.NewAutocompleteHandler(infrastructure.NewYTSearchSuggester())
	m.gatewayEvents = presentation.NewEventHandlers(voice)

	if err := presence.SetListening("/play"); err != nil {
		slog.Debug("failed to set initial presence", "error", err)
	}

	slog.Info("music module initialized with Lavalink")

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicModule) Shutdown() error {
	// Cancel context first to signal the event bridge to stop
	if m.cancel != nil {
		m.cancel()
	}

	if m.bus != nil {
		m.bus.Close()
	}

	if m.adapter != nil {
		m.adapter.Link().Close()
	}

	return nil
}

// Event handlers.

func (m *MusicModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.adapter != nil {
		m.adapter.OnVoiceServerUpdate(event)
	}
}

func (m *MusicModule) handleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	// Forward to the node first, then derive occupancy actions.
	if m.adapter != nil {
		m.adapter.OnVoiceStateUpdate(event)
	}
	if m.gatewayEvents != nil {
		m.gatewayEvents.HandleVoiceStateUpdate(s, event)
	}
}

func (m *MusicModule) handleInteractionCreate(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	if i.ApplicationCommandData().Name == "play" {
		m.autocomplete.HandlePlay(s, i)
	}
}
