package options

import (
	"fmt"

	"github.com/kiosk404/roster/internal/rosterd/service/agents"
	"github.com/spf13/pflag"
)

// StorageOptions selects and configures the key-value storage the agent
// collection is persisted to.
type StorageOptions struct {
	Type       string `json:"type"        mapstructure:"type"`
	BoltDBPath string `json:"boltdb-path" mapstructure:"boltdb-path"`
	SQLitePath string `json:"sqlite-path" mapstructure:"sqlite-path"`
	FileDir    string `json:"file-dir"    mapstructure:"file-dir"`
	Key        string `json:"key"         mapstructure:"key"`
	Watch      bool   `json:"watch"       mapstructure:"watch"`
}

// NewStorageOptions creates a StorageOptions object with default parameters.
func NewStorageOptions() *StorageOptions {
	c := (&agents.Config{}).Complete()
	return &StorageOptions{
		Type:       c.StoreType,
		BoltDBPath: c.BoltDBPath,
		SQLitePath: c.SQLitePath,
		FileDir:    c.FileDir,
		Key:        c.StorageKey,
	}
}

// Validate verifies flags passed to StorageOptions.
func (o *StorageOptions) Validate() []error {
	var errs []error

	switch o.Type {
	case agents.StoreBoltDB, agents.StoreSQLite, agents.StoreFile, agents.StoreInMemory:
	default:
		errs = append(errs, fmt.Errorf("--storage.type must be one of boltdb, sqlite, file, inmemory; got %q", o.Type))
	}
	if o.Key == "" {
		errs = append(errs, fmt.Errorf("--storage.key cannot be empty"))
	}
	if o.Watch && o.Type != agents.StoreFile {
		errs = append(errs, fmt.Errorf("--storage.watch is only supported by the file storage"))
	}

	return errs
}

// AddFlags adds flags related to storage to the specified FlagSet.
func (o *StorageOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Type, "storage.type", o.Type, "Storage backend: boltdb, sqlite, file or inmemory.")
	fs.StringVar(&o.BoltDBPath, "storage.boltdb-path", o.BoltDBPath, "Database file used by the boltdb storage.")
	fs.StringVar(&o.SQLitePath, "storage.sqlite-path", o.SQLitePath, "Database file used by the sqlite storage.")
	fs.StringVar(&o.FileDir, "storage.file-dir", o.FileDir, "Directory used by the file storage.")
	fs.StringVar(&o.Key, "storage.key", o.Key, "Key the agent collection is stored under.")
	fs.BoolVar(&o.Watch, "storage.watch", o.Watch, "Reload when the file storage is changed by another process.")
}

// ToConfig converts to the agents module configuration.
func (o *StorageOptions) ToConfig() *agents.Config {
	return &agents.Config{
		StoreType:  o.Type,
		BoltDBPath: o.BoltDBPath,
		SQLitePath: o.SQLitePath,
		FileDir:    o.FileDir,
		StorageKey: o.Key,
		Watch:      o.Watch,
	}
}
