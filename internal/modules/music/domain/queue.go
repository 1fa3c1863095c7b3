package domain

// Queue holds the tracks waiting to be played, in enqueue order.
// The currently playing track is not part of the queue; it lives on the
// Session and is replaced by the queue head when playback advances.
type Queue struct {
	tracks []*Track
}

// NewQueue creates a new empty Queue.
func NewQueue() Queue {
	return Queue{
		tracks: make([]*Track, 0),
	}
}

// IsEmpty returns true if the queue holds no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Append adds track(s) to the end of the queue.
func (q *Queue) Append(tracks ...*Track) {
	q.tracks = append(q.tracks, tracks...)
}

// Next removes and returns the track at the front of the queue,
// or nil if the queue is empty.
func (q *Queue) Next() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return track
}

// Peek returns up to limit tracks from the front of the queue without
// removing them.
func (q *Queue) Peek(limit int) []*Track {
	if limit > len(q.tracks) {
		limit = len(q.tracks)
	}
	result := make([]*Track, limit)
	copy(result, q.tracks[:limit])
	return result
}

// List returns a copy of all queued tracks.
func (q *Queue) List() []*Track {
	result := make([]*Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Clear removes all tracks from the queue.
func (q *Queue) Clear() {
	q.tracks = q.tracks[:0]
}
