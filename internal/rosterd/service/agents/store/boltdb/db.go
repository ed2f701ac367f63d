package boltdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var bucketLocalStorage = []byte("localstorage")

// DB wraps a BoltDB instance and manages its lifecycle.
type DB struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database at path. A second process
// holding the file makes Open fail after one second instead of blocking.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketLocalStorage); err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", bucketLocalStorage, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying BoltDB instance.
func (d *DB) Close() error {
	return d.db.Close()
}

// Bolt returns the underlying BoltDB instance.
func (d *DB) Bolt() *bolt.DB {
	return d.db
}
