package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestQueueServicePeek(t *testing.T) {
	t.Run("returns current track and upcoming entries", func(t *testing.T) {
		registry := newMockRegistry()
		service := NewQueueService(registry)
		session := registry.createSession(guildID, voiceChannelID, textChannelID)
		first := mockTrack("first")
		second := mockTrack("second")
		session.Lock()
		session.SetCurrent(mockTrack("playing"))
		session.Queue().Append(first, second)
		session.Unlock()

		view, err := service.Peek(context.Background(), guildID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Current == nil || view.Current.Title != "playing" {
			t.Errorf("expected current track, got %+v", view.Current)
		}
		if len(view.Upcoming) != 2 {
			t.Fatalf("expected 2 upcoming tracks, got %d", len(view.Upcoming))
		}
		if view.Upcoming[0] != first || view.Upcoming[1] != second {
			t.Error("expected upcoming tracks in queue order")
		}
		if view.Total != 2 {
			t.Errorf("expected total 2, got %d", view.Total)
		}
	})

	t.Run("caps the preview at ten while reporting the full total", func(t *testing.T) {
		registry := newMockRegistry()
		service := NewQueueService(registry)
		session := registry.createSession(guildID, voiceChannelID, textChannelID)
		session.Lock()
		session.SetCurrent(mockTrack("playing"))
		for i := range 12 {
			session.Queue().Append(mockTrack(fmt.Sprintf("track-%d", i)))
		}
		session.Unlock()

		view, err := service.Peek(context.Background(), guildID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(view.Upcoming) != 10 {
			t.Errorf("expected preview of 10, got %d", len(view.Upcoming))
		}
		if view.Total != 12 {
			t.Errorf("expected total 12, got %d", view.Total)
		}
	})

	t.Run("returns ErrNotPlaying when idle", func(t *testing.T) {
		registry := newMockRegistry()
		service := NewQueueService(registry)
		registry.createSession(guildID, voiceChannelID, textChannelID)

		_, err := service.Peek(context.Background(), guildID)
		if !errors.Is(err, ErrNotPlaying) {
			t.Errorf("expected ErrNotPlaying, got %v", err)
		}
	})

	t.Run("returns ErrNotPlaying without a session", func(t *testing.T) {
		service := NewQueueService(newMockRegistry())

		_, err := service.Peek(context.Background(), guildID)
		if !errors.Is(err, ErrNotPlaying) {
			t.Errorf("expected ErrNotPlaying, got %v", err)
		}
	})
}
