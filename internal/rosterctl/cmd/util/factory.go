package util

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/kiosk404/roster/internal/pkg/server"
	"github.com/kiosk404/roster/internal/rosterd/service/agents"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/kiosk404/roster/pkg/utils/homedir"
	"github.com/spf13/viper"
)

// Global flag names, also the viper keys they are bound to.
const (
	FlagServer  = "server"
	FlagDataDir = "data-dir"
	FlagStorage = "storage"
	FlagConfig  = "config"

	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
)

// DefaultDataDir is where local mode keeps the collection.
func DefaultDataDir() string {
	return filepath.Join(homedir.HomeDir(), server.RecommendedHomeDir, "data")
}

// Factory provides abstractions that allow the rosterctl commands to run
// against either local storage or a remote rosterd gateway without knowing
// which.
type Factory interface {
	// AgentService returns the service commands operate on. Repeated calls
	// return the same instance.
	AgentService(ctx context.Context) (service.AgentService, error)
	// Server is the gateway URL, empty in local mode.
	Server() string
	// Close releases whatever AgentService opened.
	Close() error
}

// ClientConfig selects where the agents live.
type ClientConfig struct {
	// Server is the gateway URL; empty means local mode.
	Server string
	// DataDir holds the local storage files.
	DataDir string
	// Storage is the local backend: "file" or "boltdb".
	Storage string
}

type factory struct {
	config func() ClientConfig

	once   sync.Once
	svc    service.AgentService
	module *agents.Module
	err    error
}

// NewDefaultFactory creates a factory that reads its settings from viper at
// first use, so flags, environment and config file all apply.
func NewDefaultFactory() Factory {
	return &factory{config: func() ClientConfig {
		return ClientConfig{
			Server:  viper.GetString(FlagServer),
			DataDir: viper.GetString(FlagDataDir),
			Storage: viper.GetString(FlagStorage),
		}
	}}
}

// NewFactory creates a factory with fixed settings.
func NewFactory(cfg ClientConfig) Factory {
	return &factory{config: func() ClientConfig { return cfg }}
}

func (f *factory) AgentService(ctx context.Context) (service.AgentService, error) {
	f.once.Do(func() {
		cfg := f.config()
		if cfg.Server != "" {
			logger.Debug("[Factory] using gateway at %s", cfg.Server)
			f.svc = NewClient(cfg.Server)
			return
		}
		f.module, f.err = openLocal(ctx, cfg)
		if f.err == nil {
			f.svc = f.module.Service
		}
	})
	return f.svc, f.err
}

func (f *factory) Server() string {
	return f.config().Server
}

func (f *factory) Close() error {
	if f.module != nil {
		return f.module.Close()
	}
	return nil
}

func openLocal(ctx context.Context, cfg ClientConfig) (*agents.Module, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.Storage == "" {
		cfg.Storage = agents.StoreFile
	}
	if cfg.Storage != agents.StoreFile && cfg.Storage != agents.StoreBoltDB {
		return nil, fmt.Errorf("--%s must be %q or %q, got %q", FlagStorage, agents.StoreFile, agents.StoreBoltDB, cfg.Storage)
	}

	conf := &agents.Config{
		StoreType: cfg.Storage,
		// Other rosterctl processes may write the same files.
		Watch: cfg.Storage == agents.StoreFile,
	}
	conf.UnderDir(cfg.DataDir)

	logger.Debug("[Factory] using local %s storage in %s", cfg.Storage, cfg.DataDir)
	return conf.Complete().New(ctx, agents.Dependencies{
		OnPersistError: func(err error) {
			logger.Warn("[Factory] changes could not be saved: %v", err)
		},
	})
}
