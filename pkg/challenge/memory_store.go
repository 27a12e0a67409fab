package challenge

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore implements Store with a mutex-guarded map. It is intended for
// tests and single-process development setups; production deployments use
// RedisStore so challenge state survives restarts and is shared across
// replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock replaces the store's time source. Tests use it to simulate TTL
// expiry without sleeping.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)
		return "", ErrKeyNotFound
	}
	return entry.value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || entry.expired(now) {
		s.entries[key] = memoryEntry{value: "1", expiresAt: now.Add(ttl)}
		return 1, nil
	}

	value, err := strconv.ParseInt(entry.value, 10, 64)
	if err != nil {
		return 0, ErrNotAnInteger
	}
	value++

	// Remaining TTL is preserved; only the counter changes.
	entry.value = strconv.FormatInt(value, 10)
	s.entries[key] = entry
	return value, nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed int64
	for _, key := range keys {
		entry, ok := s.entries[key]
		if !ok {
			continue
		}
		delete(s.entries, key)
		if !entry.expired(now) {
			removed++
		}
	}
	return removed, nil
}
