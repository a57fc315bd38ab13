package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/student"
)

func newTestCache(t *testing.T) (*ProfileCache, *store.Store) {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewProfileCache(st.Profiles(), nil), st
}

func TestCacheGet_DefaultsUnknownStudent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	s, err := c.Get(ctx, "fresh")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.ID != "fresh" || s.Cognitive.KnowledgeLevel != student.DefaultKnowledgeLevel {
		t.Errorf("unexpected default state: %+v", s)
	}

	// Same pointer on repeat access.
	again, err := c.Get(ctx, "fresh")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if s != again {
		t.Error("expected cached pointer")
	}
}

func TestCacheGet_LoadsPersisted(t *testing.T) {
	c, st := newTestCache(t)
	ctx := context.Background()

	persisted := student.New("alex")
	persisted.SessionCount = 5
	if err := st.Profiles().Save(ctx, persisted); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s, err := c.Get(ctx, "alex")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.SessionCount != 5 {
		t.Errorf("SessionCount = %d, want 5", s.SessionCount)
	}
}

func TestCacheSave_RequiresCached(t *testing.T) {
	c, _ := newTestCache(t)

	if err := c.Save(context.Background(), "ghost"); err != ErrNotCached {
		t.Fatalf("expected ErrNotCached, got %v", err)
	}
}

func TestCacheFlushAll_Once(t *testing.T) {
	c, st := newTestCache(t)
	ctx := context.Background()

	s, _ := c.Get(ctx, "alex")
	s.SessionCount = 2
	if _, err := c.Get(ctx, "blake"); err != nil {
		t.Fatalf("get second: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("cache len = %d", c.Len())
	}

	c.FlushAll(ctx)

	for _, id := range []string{"alex", "blake"} {
		saved, err := st.Profiles().Get(ctx, id)
		if err != nil || saved == nil {
			t.Fatalf("profile %s not flushed: %v", id, err)
		}
		if id == "alex" && saved.SessionCount != 2 {
			t.Errorf("flushed SessionCount = %d", saved.SessionCount)
		}
	}
	if c.Len() != 0 {
		t.Error("cache should be empty after flush")
	}

	// A second flush must not write again.
	if err := st.Profiles().Delete(ctx, "alex"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c.FlushAll(ctx)
	saved, err := st.Profiles().Get(ctx, "alex")
	if err != nil {
		t.Fatalf("get after second flush: %v", err)
	}
	if saved != nil {
		t.Error("second flush must be a no-op")
	}
}
