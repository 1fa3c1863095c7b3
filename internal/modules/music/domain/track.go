package domain

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Track represents a playable audio track. A Track is immutable once enqueued;
// it is owned by the queue that holds it and dropped when it finishes playing
// or the queue is cleared.
type Track struct {
	Encoded     string // Lavalink encoded track data
	Title       string
	Author      string
	Duration    time.Duration
	URI         string
	IsStream    bool
	RequesterID snowflake.ID // Discord user who requested the track
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Encoded != "" && t.Title != ""
}

// FormattedDuration renders the duration as minutes:seconds, e.g. "2:05".
// Minutes are not zero-padded, seconds always are.
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}

	totalSeconds := int(t.Duration.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60

	return strconv.Itoa(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
