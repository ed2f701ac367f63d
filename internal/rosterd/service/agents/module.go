package agents

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	boltdbStore "github.com/kiosk404/roster/internal/rosterd/service/agents/store/boltdb"
	fileStore "github.com/kiosk404/roster/internal/rosterd/service/agents/store/file"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/store/inmemory"
	sqliteStore "github.com/kiosk404/roster/internal/rosterd/service/agents/store/sqlite"
	"github.com/kiosk404/roster/pkg/logger"
)

// Storage backends accepted by Config.StoreType.
const (
	StoreInMemory = "inmemory"
	StoreBoltDB   = "boltdb"
	StoreSQLite   = "sqlite"
	StoreFile     = "file"
)

// Config holds the configuration for the Agents module.
// Follows K8S-style: Config → Complete() → New(ctx, deps).
type Config struct {
	// StoreType selects the persistence backend: "inmemory", "boltdb",
	// "sqlite" or "file". Default: "boltdb".
	StoreType string `json:"store_type,omitempty"`

	// BoltDBPath is the file path for BoltDB storage. Default: "data/roster.db".
	BoltDBPath string `json:"boltdb_path,omitempty"`

	// SQLitePath is the file path for SQLite storage. Default: "data/roster.sqlite".
	SQLitePath string `json:"sqlite_path,omitempty"`

	// FileDir is the directory for file storage. Default: "data".
	FileDir string `json:"file_dir,omitempty"`

	// StorageKey is the key the collection is stored under. Default: "agents".
	StorageKey string `json:"storage_key,omitempty"`

	// Watch reloads the collection when the file backend is changed by
	// another process. Ignored by other backends.
	Watch bool `json:"watch,omitempty"`
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.StoreType == "" {
		c.StoreType = StoreBoltDB
	}
	if c.BoltDBPath == "" {
		c.BoltDBPath = "data/roster.db"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "data/roster.sqlite"
	}
	if c.FileDir == "" {
		c.FileDir = "data"
	}
	if c.StorageKey == "" {
		c.StorageKey = service.DefaultStorageKey
	}
	return CompletedConfig{c}
}

// UnderDir points every on-disk backend at dir.
func (c *Config) UnderDir(dir string) {
	c.BoltDBPath = filepath.Join(dir, "roster.db")
	c.SQLitePath = filepath.Join(dir, "roster.sqlite")
	c.FileDir = dir
}

// Dependencies holds the external collaborators of the Agents module.
type Dependencies struct {
	// Clock drives id assignment and age checks. Default: time.Now.
	Clock func() time.Time
	// OnPersistError is told about storage writes that failed. Optional.
	OnPersistError func(error)
}

// Module is the top-level Agents module.
//
// It exposes:
//   - Service: validated agent CRUD, bulk replace and change notifications
//   - Store: direct access to the RecordStore
type Module struct {
	Service service.AgentService
	Store   *service.RecordStore

	kv     repo.KeyValueStorage
	cancel context.CancelFunc
}

// Close stops the watcher, if any, and releases the storage.
func (m *Module) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return m.kv.Close()
}

// New creates and initializes the Agents module from a completed config.
func (c CompletedConfig) New(ctx context.Context, deps Dependencies) (*Module, error) {
	logger.Info("[Agents] creating Agents module...")

	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	kv, err := c.openStorage()
	if err != nil {
		return nil, err
	}

	store := service.NewRecordStore(ctx, kv,
		service.WithStorageKey(c.StorageKey),
		service.WithStoreClock(deps.Clock),
		service.WithPersistErrorHandler(deps.OnPersistError),
	)
	svc := service.NewAgentService(store, validation.New(validation.WithClock(deps.Clock)))

	m := &Module{Service: svc, Store: store, kv: kv}

	if w, ok := kv.(repo.Watcher); ok && c.Watch {
		watchCtx, cancel := context.WithCancel(context.Background())
		if err := w.Watch(watchCtx, c.StorageKey, func() { store.Reload(watchCtx) }); err != nil {
			cancel()
			kv.Close()
			return nil, fmt.Errorf("failed to watch storage: %w", err)
		}
		m.cancel = cancel
	}

	logger.Info("[Agents] Agents module initialized (store=%s, key=%s, agents=%d, watch=%t)",
		c.StoreType, c.StorageKey, store.Len(), m.cancel != nil)
	return m, nil
}

func (c CompletedConfig) openStorage() (repo.KeyValueStorage, error) {
	switch c.StoreType {
	case StoreBoltDB:
		db, err := boltdbStore.Open(c.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open boltdb at %s: %w", c.BoltDBPath, err)
		}
		logger.Info("[Agents] using BoltDB store at %s", c.BoltDBPath)
		return boltdbStore.NewKVStore(db), nil
	case StoreSQLite:
		kv, err := sqliteStore.Open(c.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite at %s: %w", c.SQLitePath, err)
		}
		logger.Info("[Agents] using SQLite store at %s", c.SQLitePath)
		return kv, nil
	case StoreFile:
		kv, err := fileStore.Open(c.FileDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store at %s: %w", c.FileDir, err)
		}
		logger.Info("[Agents] using file store at %s", c.FileDir)
		return kv, nil
	case StoreInMemory:
		logger.Info("[Agents] using in-memory store")
		return inmemory.NewKVStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", c.StoreType)
	}
}
