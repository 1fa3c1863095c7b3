package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/application/ports"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

func mockTrack(title string) *domain.Track {
	return &domain.Track{
		Encoded:     "encoded-" + title,
		Title:       title,
		Author:      "Artist",
		Duration:    3 * time.Minute,
		URI:         "https://example.com/" + title,
		RequesterID: snowflake.ID(123),
	}
}

type mockRegistry struct {
	mu       sync.Mutex
	sessions map[snowflake.ID]*domain.Session
	deleted  []snowflake.ID
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		sessions: make(map[snowflake.ID]*domain.Session),
	}
}

func (m *mockRegistry) Get(guildID snowflake.ID) *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[guildID]
}

func (m *mockRegistry) GetOrCreate(
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[guildID]; ok {
		return session, false
	}
	session := domain.NewSession(guildID, voiceChannelID, textChannelID)
	m.sessions[guildID] = session
	return session, true
}

func (m *mockRegistry) Delete(guildID snowflake.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, guildID)
	delete(m.sessions, guildID)
}

// createSession creates a connected session and stores it in the registry.
// Returns the session for further modification (e.g., adding tracks).
func (m *mockRegistry) createSession(
	guildID, voiceChannelID, textChannelID snowflake.ID,
) *domain.Session {
	session, _ := m.GetOrCreate(guildID, voiceChannelID, textChannelID)
	return session
}

type mockAudioPlayer struct {
	mu sync.Mutex

	playErr  error
	stopErr  error
	pauseErr error

	played  []*domain.Track
	stops   int
	pausing []bool
}

func (m *mockAudioPlayer) Play(_ context.Context, _ snowflake.ID, track *domain.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	m.played = append(m.played, track)
	return nil
}

func (m *mockAudioPlayer) Stop(_ context.Context, _ snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stops++
	return nil
}

func (m *mockAudioPlayer) SetPaused(_ context.Context, _ snowflake.ID, paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.pausing = append(m.pausing, paused)
	return nil
}

func (m *mockAudioPlayer) playCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.played)
}

type mockVoiceConnection struct {
	joinErr  error
	leaveErr error
	joins    []snowflake.ID
	leaves   []snowflake.ID
}

func (m *mockVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joins = append(m.joins, channelID)
	return nil
}

func (m *mockVoiceConnection) LeaveChannel(_ context.Context, guildID snowflake.ID) error {
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.leaves = append(m.leaves, guildID)
	return nil
}

type mockVoiceStateProvider struct {
	userChannels map[snowflake.ID]snowflake.ID // userID -> channelID
	memberCounts map[snowflake.ID]int          // channelID -> occupant count
	err          error
}

func (m *mockVoiceStateProvider) UserChannel(
	_, userID snowflake.ID,
) (snowflake.ID, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.userChannels[userID], nil
}

func (m *mockVoiceStateProvider) BotChannel(guildID snowflake.ID) (snowflake.ID, error) {
	return m.UserChannel(guildID, botID)
}

func (m *mockVoiceStateProvider) CountChannelMembers(
	_, channelID snowflake.ID,
) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.memberCounts[channelID], nil
}

type mockTrackResolver struct {
	loadErr    error
	loadResult *ports.LoadResult
	queries    []string
}

func (m *mockTrackResolver) LoadTracks(
	_ context.Context,
	query string,
) (*ports.LoadResult, error) {
	m.queries = append(m.queries, query)
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.loadResult, nil
}

type mockPlaylistLister struct {
	pages map[string]*ports.PlaylistPage // pageToken -> page
	err   error
}

func (m *mockPlaylistLister) ListPage(
	_ context.Context,
	_, pageToken string,
) (*ports.PlaylistPage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pages[pageToken], nil
}

// Shared test fixture ids.
var (
	botID          = snowflake.ID(99)
	guildID        = snowflake.ID(1)
	userID         = snowflake.ID(42)
	voiceChannelID = snowflake.ID(4)
	textChannelID  = snowflake.ID(3)
)
