package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pocketledger/actions-api/internal/domain"
)

// MemoryStore implements Store with an in-process map. Each tag carries a
// version counter; Invalidate bumps the counter so every entry written
// under the old version becomes unreachable. Stale entries are collected
// lazily on read and by a periodic sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	versions map[domain.CacheTag]uint64
	entries  map[string]memoryEntry
	ttl      time.Duration
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-process cache store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		versions: make(map[domain.CacheTag]uint64),
		entries:  make(map[string]memoryEntry),
		ttl:      ttl,
	}
	return s
}

func (s *MemoryStore) entryKey(tag domain.CacheTag, key string) string {
	return fmt.Sprintf("%s:%d:%s", tag, s.versions[tag], key)
}

// Get returns the cached payload for the tag's current version, if any
func (s *MemoryStore) Get(ctx context.Context, tag domain.CacheTag, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[s.entryKey(tag, key)]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload under the tag's current version
func (s *MemoryStore) Set(ctx context.Context, tag domain.CacheTag, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.entryKey(tag, key)] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Invalidate bumps the version counter for each tag, orphaning all entries
// written under the previous version
func (s *MemoryStore) Invalidate(ctx context.Context, tags ...domain.CacheTag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tag := range tags {
		s.versions[tag]++
	}
	return nil
}

// Healthy always succeeds for the in-process store
func (s *MemoryStore) Healthy(ctx context.Context) error {
	return nil
}

// Sweep removes expired and orphaned entries. Called from the job
// scheduler; safe to call concurrently with reads and writes.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	live := make(map[string]struct{}, len(domain.AllTags()))
	for _, tag := range domain.AllTags() {
		live[fmt.Sprintf("%s:%d:", tag, s.versions[tag])] = struct{}{}
	}
	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) || !hasLivePrefix(live, key) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func hasLivePrefix(live map[string]struct{}, key string) bool {
	for prefix := range live {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
