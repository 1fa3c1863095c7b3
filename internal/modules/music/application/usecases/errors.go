package usecases

import "errors"

// User-facing conditions for the music module. All of these are
// precondition-not-met warnings rendered at the command boundary,
// never faults.
var (
	// ErrNotConnected is returned when no active voice connection exists.
	ErrNotConnected = errors.New("bot is not currently in any voice channel")

	// ErrNoVoiceChannel is returned when the invoking user is not in a voice channel.
	ErrNoVoiceChannel = errors.New("you are not in a voice channel")

	// ErrNoSearchResults is returned when a query resolves to nothing.
	ErrNoSearchResults = errors.New("no results found for query")

	// ErrNothingToStop is returned when stop is invoked with no session playing.
	ErrNothingToStop = errors.New("nothing to stop")

	// ErrNothingToSkip is returned when skip is invoked with nothing playing.
	ErrNothingToSkip = errors.New("nothing to skip")

	// ErrNotPlaying is returned when the player is not currently playing.
	ErrNotPlaying = errors.New("player is not currently playing")

	// ErrNotPaused is returned when resume is invoked while not paused.
	ErrNotPaused = errors.New("player is not currently paused")
)
