package infrastructure

import (
	"github.com/bwmarrin/discordgo"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
)

// PresenceAdapter updates the bot's presence through the gateway.
type PresenceAdapter struct {
	session *discordgo.Session
}

// NewPresenceAdapter creates a new PresenceAdapter.
func NewPresenceAdapter(session *discordgo.Session) *PresenceAdapter {
	return &PresenceAdapter{session: session}
}

// SetListening sets the bot's "Listening to ..." activity.
func (p *PresenceAdapter) SetListening(name string) error {
	return p.session.UpdateListeningStatus(name)
}

// Ensure PresenceAdapter implements ports.PresenceUpdater.
var _ ports.PresenceUpdater = (*PresenceAdapter)(nil)
