package infrastructure

import (
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ntvinh11/chillbot/internal/modules/music/domain"
)

func TestMemorySessionRegistryGetOrCreate(t *testing.T) {
	registry := NewMemorySessionRegistry()
	guildID := snowflake.ID(1)

	session, created := registry.GetOrCreate(guildID, snowflake.ID(2), snowflake.ID(3))
	if !created {
		t.Error("expected first call to create the session")
	}
	if session.GuildID() != guildID {
		t.Errorf("expected guild %d, got %d", guildID, session.GuildID())
	}

	again, created := registry.GetOrCreate(guildID, snowflake.ID(9), snowflake.ID(9))
	if created {
		t.Error("expected second call to reuse the session")
	}
	if again != session {
		t.Error("expected the same session instance")
	}

	if registry.Get(guildID) != session {
		t.Error("expected Get to return the stored session")
	}
	if registry.Count() != 1 {
		t.Errorf("expected one session, got %d", registry.Count())
	}
}

func TestMemorySessionRegistryDelete(t *testing.T) {
	registry := NewMemorySessionRegistry()
	guildID := snowflake.ID(1)
	registry.GetOrCreate(guildID, snowflake.ID(2), snowflake.ID(3))

	registry.Delete(guildID)

	if registry.Get(guildID) != nil {
		t.Error("expected session to be removed")
	}
	registry.Delete(guildID) // deleting again is harmless
}

func TestMemorySessionRegistryGuildsAreIndependent(t *testing.T) {
	registry := NewMemorySessionRegistry()

	first, _ := registry.GetOrCreate(snowflake.ID(1), snowflake.ID(2), snowflake.ID(3))
	second, _ := registry.GetOrCreate(snowflake.ID(2), snowflake.ID(2), snowflake.ID(3))

	if first == second {
		t.Error("expected distinct sessions per guild")
	}

	registry.Delete(snowflake.ID(1))
	if registry.Get(snowflake.ID(2)) == nil {
		t.Error("expected the other guild's session to survive")
	}
}

// Concurrent creation for the same guild must yield exactly one session.
func TestMemorySessionRegistryConcurrentCreate(t *testing.T) {
	registry := NewMemorySessionRegistry()
	guildID := snowflake.ID(1)

	const workers = 16
	sessions := make([]*domain.Session, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			sessions[i], _ = registry.GetOrCreate(guildID, snowflake.ID(2), snowflake.ID(3))
		}()
	}
	wg.Wait()

	if registry.Count() != 1 {
		t.Fatalf("expected one session, got %d", registry.Count())
	}
	for i := 1; i < workers; i++ {
		if sessions[i] != sessions[0] {
			t.Fatal("expected every caller to get the same session")
		}
	}
}
