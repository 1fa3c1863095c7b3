package infrastructure

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

// MemorySessionRegistry is an in-memory implementation of SessionRegistry.
// The registry mutex guards only the guild map; per-guild serialization is
// the session's own lock.
type MemorySessionRegistry struct {
	mu       sync.RWMutex
	sessions map[snowflake.ID]*domain.Session
}

// NewMemorySessionRegistry creates a new MemorySessionRegistry.
func NewMemorySessionRegistry() *MemorySessionRegistry {
	return &MemorySessionRegistry{
		sessions: make(map[snowflake.ID]*domain.Session),
	}
}

// Get returns the session for the given guild, or nil if none exists.
func (r *MemorySessionRegistry) Get(guildID snowflake.ID) *domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[guildID]
}

// GetOrCreate returns the existing session for the guild or creates a new
// one. Creation is atomic with respect to concurrent callers, so at most one
// session ever exists per guild.
func (r *MemorySessionRegistry) GetOrCreate(
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[guildID]; ok {
		return session, false
	}

	session := domain.NewSession(guildID, voiceChannelID, textChannelID)
	r.sessions[guildID] = session
	return session, true
}

// Delete removes the session for the given guild.
func (r *MemorySessionRegistry) Delete(guildID snowflake.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, guildID)
}

// Count returns the number of active sessions (for testing/monitoring).
func (r *MemorySessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Ensure MemorySessionRegistry implements SessionRegistry.
var _ domain.SessionRegistry = (*MemorySessionRegistry)(nil)
