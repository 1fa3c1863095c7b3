package ports

// PresenceUpdater updates the bot's global "Listening to ..." presence.
type PresenceUpdater interface {
	SetListening(name string) error
}
