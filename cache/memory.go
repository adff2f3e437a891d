package cache

import (
	"context"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryStore keeps entries in process memory. Expired entries are removed
// when they are next read.
type MemoryStore struct {
	clock   clock.Clock
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore(clock clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, found := s.entries[key]
	if !found {
		return nil, false, nil
	}
	if !s.clock.Now().Before(e.expires) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:   value,
		expires: s.clock.Now().Add(ttl),
	}
	return nil
}

// Len returns the number of entries, including any that expired but have not been read since.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
