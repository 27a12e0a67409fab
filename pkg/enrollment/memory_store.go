package enrollment

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store with a mutex-guarded map. Conditional
// updates run under the lock, which gives it the same single-success
// semantics the database-backed stores get from conditional queries.
// Intended for tests and development.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(record), nil
}

func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.UserID] = cloneRecord(record)
	return nil
}

func (s *MemoryStore) Enable(ctx context.Context, userID string, enabledAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok || record.Enabled {
		return ErrNotFound
	}
	record.Enabled = true
	record.EnabledAt = enabledAt
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID]; !ok {
		return ErrNotFound
	}
	delete(s.records, userID)
	return nil
}

func (s *MemoryStore) ConsumeBackupCode(ctx context.Context, userID, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return false, nil
	}

	index := slices.Index(record.BackupCodeHashes, hash)
	if index < 0 {
		return false, nil
	}
	record.BackupCodeHashes = slices.Delete(record.BackupCodeHashes, index, index+1)
	return true, nil
}

func (s *MemoryStore) ReplaceBackupCodes(ctx context.Context, userID string, hashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return ErrNotFound
	}
	record.BackupCodeHashes = slices.Clone(hashes)
	return nil
}

func cloneRecord(record *Record) *Record {
	clone := *record
	clone.BackupCodeHashes = slices.Clone(record.BackupCodeHashes)
	return &clone
}
