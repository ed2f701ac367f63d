package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
	"github.com/kiosk404/roster/pkg/logger"
)

// DefaultDebounce is how long Watch waits after the last file event before
// reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// KVStore implements repo.KeyValueStorage and repo.Watcher with one JSON file
// per key under a directory. Writes go through a temp file and a rename, so
// readers never see a half-written value.
type KVStore struct {
	dir      string
	debounce time.Duration

	mu   sync.Mutex
	last map[string][]byte
}

// Option configures a KVStore.
type Option func(*KVStore)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *KVStore) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// Open creates a KVStore rooted at dir, creating the directory if needed.
func Open(dir string, opts ...Option) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	s := &KVStore{
		dir:      dir,
		debounce: DefaultDebounce,
		last:     make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the file backing key.
func (s *KVStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the contents of the file for key.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repo.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	s.remember(key, data)
	return data, nil
}

// Set atomically replaces the file for key.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync key %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("failed to replace key %q: %w", key, err)
	}
	s.remember(key, value)
	return nil
}

// Close is a no-op; watchers stop with their context.
func (s *KVStore) Close() error { return nil }

// Watch calls fn when the file for key changes to content this store did not
// itself write or read last. Bursts of events are coalesced. Watch returns
// once the watcher is running.
func (s *KVStore) Watch(ctx context.Context, key string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Renames replace the inode, so watch the directory rather than the file.
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %q: %w", s.dir, err)
	}

	go s.watchLoop(ctx, watcher, key, fn)

	logger.Debug("[FileStore] watcher started for %s", s.Path(key))
	return nil
}

func (s *KVStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, key string, fn func()) {
	defer watcher.Close()

	target := filepath.Clean(s.Path(key))
	timer := time.AfterFunc(time.Hour, func() {
		if s.changedExternally(key) {
			logger.Info("[FileStore] %s changed on disk", target)
			fn()
		}
	})
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				timer.Reset(s.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("[FileStore] watcher error: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

func (s *KVStore) changedExternally(key string) bool {
	data, err := os.ReadFile(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	last, known := s.last[key]
	if known && bytes.Equal(last, data) {
		return false
	}
	return true
}

func (s *KVStore) remember(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[key] = append([]byte(nil), data...)
}
