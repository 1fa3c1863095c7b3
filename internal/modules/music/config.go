package music

// chillPlaylistID is the curated lo-fi playlist /chill picks from.
const chillPlaylistID = "PL-F2EKRbzrNS0mQqAW6tt75FTgf4j5gjS"

// Config holds the music module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	YouTubeAPIKey    string `env:"YOUTUBE_API_KEY,notEmpty"`
	ChillPlaylistID  string `env:"CHILL_PLAYLIST_ID"`
}
