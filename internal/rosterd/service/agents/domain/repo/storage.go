package repo

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValueStorage.Get for a key never written.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStorage is the durable local key-value slot the record store
// mirrors its collection into. Values are opaque blobs.
type KeyValueStorage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases the underlying resources.
	Close() error
}

// Watcher is implemented by storages that can report external changes to a key.
type Watcher interface {
	// Watch calls fn whenever key is changed by someone other than this
	// storage, until ctx is done.
	Watch(ctx context.Context, key string, fn func()) error
}
