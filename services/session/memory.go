package session

import (
	"context"
	"sync"
	"time"

	"reservo/models"
)

// MemoryStore implements Store with a mutex-guarded map. Used in local
// engine mode and in tests. Entries expire after the configured TTL; a
// background janitor sweeps them so the map never grows unbounded.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	ctx       models.ChatContext
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) Get(_ context.Context, conversationID string) (*models.ChatContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[conversationID]
	if !ok || s.now().After(e.expiresAt) {
		delete(s.entries, conversationID)
		return &models.ChatContext{}, nil
	}
	chatCtx := e.ctx
	return &chatCtx, nil
}

func (s *MemoryStore) Set(_ context.Context, conversationID string, chatCtx *models.ChatContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[conversationID] = memoryEntry{
		ctx:       *chatCtx,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, conversationID)
	return nil
}
