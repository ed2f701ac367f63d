package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
)

// KVStore implements repo.KeyValueStorage on a single BoltDB bucket.
type KVStore struct {
	db *DB
}

// NewKVStore creates a new BoltDB-backed KVStore. Closing the store closes db.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the value under key.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.Bolt().View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketLocalStorage).Get([]byte(key))
		if data == nil {
			return repo.ErrKeyNotFound
		}
		// Bolt memory is only valid inside the transaction.
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Bolt().Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLocalStorage).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *KVStore) Close() error {
	return s.db.Close()
}
