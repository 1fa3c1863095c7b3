package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// EnqueueOutput contains the result of the Enqueue use case.
type EnqueueOutput struct {
	Track   *domain.Track
	Started bool // true if playback started immediately
	// Position is the track's 1-based position in the queue when it was
	// appended instead of started.
	Position int
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	Skipped *domain.Track
	Next    *domain.Track // nil if the queue was empty
}

// PlaybackService exposes the playback operations used by commands against
// a guild session's queue and remote player handle.
type PlaybackService struct {
	registry    domain.SessionRegistry
	audioPlayer ports.AudioPlayer
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	registry domain.SessionRegistry,
	audioPlayer ports.AudioPlayer,
) *PlaybackService {
	return &PlaybackService{
		registry:    registry,
		audioPlayer: audioPlayer,
	}
}

// Enqueue adds a track to the guild's queue. If nothing is currently playing
// the track starts immediately; otherwise it is appended and its queue
// position reported.
func (p *PlaybackService) Enqueue(
	ctx context.Context,
	guildID snowflake.ID,
	track *domain.Track,
) (*EnqueueOutput, error) {
	session := p.registry.Get(guildID)
	if session == nil {
		return nil, ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	if !session.HasTrack() {
		if err := p.audioPlayer.Play(ctx, guildID, track); err != nil {
			return nil, err
		}
		session.SetCurrent(track)
		session.SetPaused(false)
		return &EnqueueOutput{Track: track, Started: true}, nil
	}

	session.Queue().Append(track)
	return &EnqueueOutput{Track: track, Position: session.Queue().Len()}, nil
}

// Stop clears the queue and halts the current track.
func (p *PlaybackService) Stop(ctx context.Context, guildID snowflake.ID) error {
	session := p.registry.Get(guildID)
	if session == nil {
		return ErrNothingToStop
	}

	session.Lock()
	defer session.Unlock()

	session.Queue().Clear()

	if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
		return err
	}
	session.SetCurrent(nil)
	session.SetPaused(false)

	return nil
}

// Skip advances to the next queued track, or halts playback if the queue is
// empty. Returns ErrNothingToSkip when nothing is playing.
func (p *PlaybackService) Skip(ctx context.Context, guildID snowflake.ID) (*SkipOutput, error) {
	session := p.registry.Get(guildID)
	if session == nil {
		return nil, ErrNothingToSkip
	}

	session.Lock()
	defer session.Unlock()

	if !session.HasTrack() {
		return nil, ErrNothingToSkip
	}

	skipped := session.Current()

	next := session.Queue().Next()
	if next == nil {
		if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
			return nil, err
		}
		session.SetCurrent(nil)
		session.SetPaused(false)
		return &SkipOutput{Skipped: skipped}, nil
	}

	if err := p.audioPlayer.Play(ctx, guildID, next); err != nil {
		return nil, err
	}
	session.SetCurrent(next)
	session.SetPaused(false)

	return &SkipOutput{Skipped: skipped, Next: next}, nil
}

// Pause pauses the current playback. Returns ErrNotPlaying when the player
// is not currently playing.
func (p *PlaybackService) Pause(ctx context.Context, guildID snowflake.ID) error {
	session := p.registry.Get(guildID)
	if session == nil {
		return ErrNotPlaying
	}

	session.Lock()
	defer session.Unlock()

	if !session.IsPlaying() {
		return ErrNotPlaying
	}

	if err := p.audioPlayer.SetPaused(ctx, guildID, true); err != nil {
		return err
	}
	session.SetPaused(true)

	return nil
}

// Resume resumes the paused playback. Returns ErrNotPaused when the player
// is not currently paused.
func (p *PlaybackService) Resume(ctx context.Context, guildID snowflake.ID) error {
	session := p.registry.Get(guildID)
	if session == nil {
		return ErrNotPaused
	}

	session.Lock()
	defer session.Unlock()

	if !session.HasTrack() || !session.IsPaused() {
		return ErrNotPaused
	}

	if err := p.audioPlayer.SetPaused(ctx, guildID, false); err != nil {
		return err
	}
	session.SetPaused(false)

	return nil
}

// PlayNext advances the session to the next queued track after the current
// one ended on the node. Returns the track that started, or nil if the queue
// was empty.
func (p *PlaybackService) PlayNext(
	ctx context.Context,
	guildID snowflake.ID,
) (*domain.Track, error) {
	session := p.registry.Get(guildID)
	if session == nil {
		return nil, ErrNotConnected
	}

	session.Lock()
	defer session.Unlock()

	next := session.Queue().Next()
	if next == nil {
		session.SetCurrent(nil)
		session.SetPaused(false)
		return nil, nil
	}

	if err := p.audioPlayer.Play(ctx, guildID, next); err != nil {
		session.SetCurrent(nil)
		return nil, err
	}
	session.SetCurrent(next)
	session.SetPaused(false)

	return next, nil
}
