package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/events"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/usecases"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// idlePresence is what the bot listens to when nothing is playing.
const idlePresence = "/play"

// RemoteEventBridge consumes the node's playback lifecycle events and keeps
// the guild sessions and the bot presence in line with them. Handlers never
// fail: presence and logging problems are swallowed, and a single guild's
// trouble does not affect the others.
type RemoteEventBridge struct {
	bus      *events.Bus
	registry domain.SessionRegistry
	playback *usecases.PlaybackService
	presence ports.PresenceUpdater
}

// NewRemoteEventBridge creates a new RemoteEventBridge.
func NewRemoteEventBridge(
	bus *events.Bus,
	registry domain.SessionRegistry,
	playback *usecases.PlaybackService,
	presence ports.PresenceUpdater,
) *RemoteEventBridge {
	return &RemoteEventBridge{
		bus:      bus,
		registry: registry,
		playback: playback,
		presence: presence,
	}
}

// Run consumes bus events until the context is cancelled or the bus closes.
// Intended to run in its own goroutine.
func (b *RemoteEventBridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-b.bus.TrackStarted():
			if !ok {
				return
			}
			b.handleTrackStarted(event)

		case event, ok := <-b.bus.TrackEnded():
			if !ok {
				return
			}
			b.handleTrackEnded(ctx, event)

		case event, ok := <-b.bus.TrackException():
			if !ok {
				return
			}
			b.handleTrackException(event)

		case event, ok := <-b.bus.QueueEnded():
			if !ok {
				return
			}
			// Observable for future extension; no action today.
			slog.Debug("queue ended on guild", "guild", event.GuildID)
		}
	}
}

func (b *RemoteEventBridge) handleTrackStarted(event domain.TrackStartedEvent) {
	b.setListening(event.Author + " - " + event.Title)

	slog.Info("track started on guild", "guild", event.GuildID)
}

func (b *RemoteEventBridge) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	if event.Reason.ShouldAdvanceQueue() {
		_, err := b.playback.PlayNext(ctx, event.GuildID)
		if err != nil && !errors.Is(err, usecases.ErrNotConnected) {
			slog.Warn("failed to play next track",
				"guild", event.GuildID, "error", err)
		}
	}

	if b.sessionIdle(event.GuildID) {
		b.setListening(idlePresence)
		b.bus.PublishQueueEnded(domain.QueueEndedEvent{GuildID: event.GuildID})
	}

	slog.Info("track finished on guild", "guild", event.GuildID)
}

func (b *RemoteEventBridge) handleTrackException(event domain.TrackExceptionEvent) {
	// The node is responsible for advancing or halting after an exception.
	slog.Warn("track exception event happened on guild",
		"guild", event.GuildID, "error", event.Message)
}

// sessionIdle reports whether the guild has no active track left.
func (b *RemoteEventBridge) sessionIdle(guildID snowflake.ID) bool {
	session := b.registry.Get(guildID)
	if session == nil {
		return true
	}

	session.Lock()
	defer session.Unlock()
	return !session.HasTrack()
}

func (b *RemoteEventBridge) setListening(name string) {
	if err := b.presence.SetListening(name); err != nil {
		slog.Debug("failed to update presence", "error", err)
	}
}
