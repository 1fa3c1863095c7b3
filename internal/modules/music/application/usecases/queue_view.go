package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// queuePreviewLimit is how many upcoming tracks a queue view shows.
const queuePreviewLimit = 10

// QueueView is a read-only snapshot of a guild's playback queue.
type QueueView struct {
	Current  *domain.Track
	Upcoming []*domain.Track // at most queuePreviewLimit entries
	Total    int             // total number of queued tracks
}

// QueueService exposes read access to guild queues.
type QueueService struct {
	registry domain.SessionRegistry
}

// NewQueueService creates a new QueueService.
func NewQueueService(registry domain.SessionRegistry) *QueueService {
	return &QueueService{registry: registry}
}

// Peek returns the current track and up to the next ten queued tracks.
// Returns ErrNotPlaying if nothing is active.
func (q *QueueService) Peek(_ context.Context, guildID snowflake.ID) (*QueueView, error) {
	session := q.registry.Get(guildID)
	if session == nil {
		return nil, ErrNotPlaying
	}

	session.Lock()
	defer session.Unlock()

	if !session.HasTrack() {
		return nil, ErrNotPlaying
	}

	return &QueueView{
		Current:  session.Current(),
		Upcoming: session.Queue().Peek(queuePreviewLimit),
		Total:    session.Queue().Len(),
	}, nil
}
