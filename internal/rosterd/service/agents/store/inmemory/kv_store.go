package inmemory

import (
	"context"
	"sync"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
)

// KVStore is an in-memory implementation of repo.KeyValueStorage. Nothing
// survives the process.
type KVStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

// NewKVStore creates a new KVStore instance.
func NewKVStore() *KVStore {
	return &KVStore{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the value under key.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, repo.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

// Close is a no-op.
func (s *KVStore) Close() error { return nil }

// FailReads makes every Get return err; nil restores normal reads.
func (s *KVStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites makes every Set return err; nil restores normal writes.
func (s *KVStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Writes returns the number of successful Set calls.
func (s *KVStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
