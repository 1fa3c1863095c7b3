package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason represents why a track ended on the remote node.
type TrackEndReason string

const (
	// TrackEndFinished means the track finished normally.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the track failed to load.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means the track was stopped by the user.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means the track was replaced by another.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the track was cleaned up by the node.
	TrackEndCleanup TrackEndReason = "cleanup"
)

// ShouldAdvanceQueue returns true if this end reason should advance the queue.
// Stopped and replaced ends come from our own stop/skip calls, which already
// positioned the queue themselves.
func (r TrackEndReason) ShouldAdvanceQueue() bool {
	return r == TrackEndFinished || r == TrackEndLoadFailed
}

// TrackStartedEvent is published when the node starts playing a track.
type TrackStartedEvent struct {
	GuildID snowflake.ID
	Title   string
	Author  string
}

// TrackEndedEvent is published when a track ends on the node.
type TrackEndedEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
}

// TrackExceptionEvent is published when the node reports a playback error.
type TrackExceptionEvent struct {
	GuildID snowflake.ID
	Message string
}

// QueueEndedEvent is published when a track ends and no further track is
// queued. Observable for future extension; the bridge takes no action on it.
type QueueEndedEvent struct {
	GuildID snowflake.ID
}
