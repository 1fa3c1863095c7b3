package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Session is the per-guild playback state: the voice channel the bot is
// connected to, the text channel that commands originate from, the track
// queue, the current track, and the paused flag.
//
// All handler paths that mutate a session (commands, gateway events, remote
// node events) must hold the session lock for the full read-modify-write,
// including any remote player calls made as part of the mutation. This is
// what serializes a /skip racing a track-end for the same guild. Sessions
// for different guilds are fully independent.
type Session struct {
	mu sync.Mutex

	guildID        snowflake.ID
	voiceChannelID snowflake.ID
	textChannelID  snowflake.ID

	queue   Queue
	current *Track
	paused  bool
}

// NewSession creates a Session for the given guild and channels.
func NewSession(guildID, voiceChannelID, textChannelID snowflake.ID) *Session {
	return &Session{
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		queue:          NewQueue(),
	}
}

// Lock acquires the per-guild serialization lock.
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the per-guild serialization lock.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// GuildID returns the guild this session belongs to.
// Immutable after creation, safe to read without the lock.
func (s *Session) GuildID() snowflake.ID {
	return s.guildID
}

// VoiceChannelID returns the connected voice channel. Caller must hold the lock.
func (s *Session) VoiceChannelID() snowflake.ID {
	return s.voiceChannelID
}

// SetVoiceChannelID updates the connected voice channel. Caller must hold the lock.
func (s *Session) SetVoiceChannelID(channelID snowflake.ID) {
	s.voiceChannelID = channelID
}

// TextChannelID returns the text channel responses go to. Caller must hold the lock.
func (s *Session) TextChannelID() snowflake.ID {
	return s.textChannelID
}

// SetTextChannelID updates the response text channel. Caller must hold the lock.
func (s *Session) SetTextChannelID(channelID snowflake.ID) {
	s.textChannelID = channelID
}

// Queue returns the session's track queue. Caller must hold the lock.
func (s *Session) Queue() *Queue {
	return &s.queue
}

// Current returns the currently playing track, or nil. Caller must hold the lock.
func (s *Session) Current() *Track {
	return s.current
}

// SetCurrent replaces the current track. Caller must hold the lock.
func (s *Session) SetCurrent(track *Track) {
	s.current = track
}

// HasTrack returns true if a track is loaded (playing or paused).
// Caller must hold the lock.
func (s *Session) HasTrack() bool {
	return s.current != nil
}

// IsPlaying returns true if a track is loaded and not paused.
// Caller must hold the lock.
func (s *Session) IsPlaying() bool {
	return s.current != nil && !s.paused
}

// IsPaused returns the paused flag. Caller must hold the lock.
func (s *Session) IsPaused() bool {
	return s.paused
}

// SetPaused updates the paused flag. Caller must hold the lock.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// IsIdle returns true if the session has no current track and an empty
// queue, making it eligible for teardown. Caller must hold the lock.
func (s *Session) IsIdle() bool {
	return s.current == nil && s.queue.IsEmpty()
}
