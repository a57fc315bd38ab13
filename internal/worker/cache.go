// Package worker implements the tool-serving side of the protocol: a
// registry of named tools over a cached student model, dispatched from a
// line-based JSON-RPC loop on stdin/stdout.
package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/studybuddyai/studybuddy/internal/store"
	"github.com/studybuddyai/studybuddy/internal/student"
)

// ErrNotCached is returned by operations that require the profile to have
// been loaded by an earlier call.
var ErrNotCached = errors.New("student profile not loaded in cache")

// ProfileCache keeps live student models in memory between tool calls.
// Mutations during a session happen only on the cached copy; the store is
// written on explicit saves and on the shutdown flush.
type ProfileCache struct {
	mu       sync.Mutex
	profiles map[string]*student.State
	repo     store.ProfileRepo
	flushed  bool
	log      *zap.Logger
}

// NewProfileCache creates an empty cache over the given repository.
func NewProfileCache(repo store.ProfileRepo, log *zap.Logger) *ProfileCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileCache{
		profiles: make(map[string]*student.State),
		repo:     repo,
		log:      log.Named("cache"),
	}
}

// Get returns the cached model for studentID, loading it from the store on
// a miss and falling back to a fresh default model for unknown students.
func (c *ProfileCache) Get(ctx context.Context, studentID string) (*student.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.profiles[studentID]; ok {
		return s, nil
	}

	s, err := c.repo.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = student.New(studentID)
	}
	c.profiles[studentID] = s
	return s, nil
}

// Lookup returns the cached model only, without touching the store.
func (c *ProfileCache) Lookup(studentID string) (*student.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.profiles[studentID]
	return s, ok
}

// Put inserts or replaces a model in the cache.
func (c *ProfileCache) Put(s *student.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[s.ID] = s
}

// Save persists the cached model for studentID.
func (c *ProfileCache) Save(ctx context.Context, studentID string) error {
	c.mu.Lock()
	s, ok := c.profiles[studentID]
	c.mu.Unlock()
	if !ok {
		return ErrNotCached
	}
	return c.repo.Save(ctx, s)
}

// FlushAll persists every cached profile and empties the cache. Repeated
// calls after the first are no-ops, so the signal handler and the EOF path
// cannot double-write.
func (c *ProfileCache) FlushAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flushed {
		return
	}
	c.flushed = true

	for id, s := range c.profiles {
		if err := c.repo.Save(ctx, s); err != nil {
			c.log.Error("flush profile failed", zap.String("student_id", id), zap.Error(err))
			continue
		}
		c.log.Info("profile flushed", zap.String("student_id", id))
	}
	c.profiles = make(map[string]*student.State)
}

// Len returns the number of cached profiles.
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.profiles)
}
