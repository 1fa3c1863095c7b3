package events

import (
	"log/slog"
	"sync"

	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Bus is a channel-based bus carrying the remote node's playback lifecycle
// events to the bridge. One channel per event kind, dispatched by type.
type Bus struct {
	trackStarted   chan domain.TrackStartedEvent
	trackEnded     chan domain.TrackEndedEvent
	trackException chan domain.TrackExceptionEvent
	queueEnded     chan domain.QueueEndedEvent

	closed bool
	mu     sync.RWMutex
}

// NewBus creates a new Bus with the given buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	return &Bus{
		trackStarted:   make(chan domain.TrackStartedEvent, bufferSize),
		trackEnded:     make(chan domain.TrackEndedEvent, bufferSize),
		trackException: make(chan domain.TrackExceptionEvent, bufferSize),
		queueEnded:     make(chan domain.QueueEndedEvent, bufferSize),
	}
}

// PublishTrackStarted publishes a TrackStartedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishTrackStarted(event domain.TrackStartedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TrackStarted")
		return
	}

	select {
	case b.trackStarted <- event:
		slog.Debug("published event", "type", "TrackStarted", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TrackStarted")
	}
}

// PublishTrackEnded publishes a TrackEndedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishTrackEnded(event domain.TrackEndedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TrackEnded")
		return
	}

	select {
	case b.trackEnded <- event:
		slog.Debug("published event", "type", "TrackEnded", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TrackEnded")
	}
}

// PublishTrackException publishes a TrackExceptionEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishTrackException(event domain.TrackExceptionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TrackException")
		return
	}

	select {
	case b.trackException <- event:
		slog.Debug("published event", "type", "TrackException", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TrackException")
	}
}

// PublishQueueEnded publishes a QueueEndedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishQueueEnded(event domain.QueueEndedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "QueueEnded")
		return
	}

	select {
	case b.queueEnded <- event:
		slog.Debug("published event", "type", "QueueEnded", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "QueueEnded")
	}
}

// TrackStarted returns the channel for TrackStartedEvent.
func (b *Bus) TrackStarted() <-chan domain.TrackStartedEvent {
	return b.trackStarted
}

// TrackEnded returns the channel for TrackEndedEvent.
func (b *Bus) TrackEnded() <-chan domain.TrackEndedEvent {
	return b.trackEnded
}

// TrackException returns the channel for TrackExceptionEvent.
func (b *Bus) TrackException() <-chan domain.TrackExceptionEvent {
	return b.trackException
}

// QueueEnded returns the channel for QueueEndedEvent.
func (b *Bus) QueueEnded() <-chan domain.QueueEndedEvent {
	return b.queueEnded
}

// Close closes all event channels.
// After calling Close, publishing will no longer send events.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.trackStarted)
	close(b.trackEnded)
	close(b.trackException)
	close(b.queueEnded)

	slog.Debug("event bus closed")
}
