package rosterd

import (
	"context"
	"fmt"

	genericapiserver "github.com/kiosk404/roster/internal/pkg/server"
	"github.com/kiosk404/roster/internal/rosterd/config"
	"github.com/kiosk404/roster/internal/rosterd/options"
	"github.com/kiosk404/roster/internal/rosterd/service/agents"
	"github.com/kiosk404/roster/pkg/logger"
)

type apiServer struct {
	genericAPIServer *genericapiserver.GenericAPIServer
	gatewayOptions   *options.GatewayOptions

	agentsModule *agents.Module
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(ctx context.Context, cfg *config.Config) (*apiServer, error) {
	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}

	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	// Initialize Agents module (K8S-style: Config → Complete → New).
	agentsModule, err := cfg.StorageOptions.ToConfig().Complete().New(ctx, agents.Dependencies{
		OnPersistError: func(err error) {
			logger.Error("[Rosterd] change kept in memory only, storage write failed: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Agents module: %w", err)
	}
	logger.Info("[Rosterd] Agents module initialized successfully")

	return &apiServer{
		genericAPIServer: genericServer,
		gatewayOptions:   cfg.GatewayOptions,
		agentsModule:     agentsModule,
	}, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		agentService:   s.agentsModule.Service,
		gatewayOptions: s.gatewayOptions,
	})

	return preparedAPIServer{s}
}

// Run serves until ctx is done, then shuts the HTTP server down and closes
// the storage.
func (s preparedAPIServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.genericAPIServer.Run()
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Info("[Rosterd] shutting down...")
	}

	s.genericAPIServer.Close()
	if cerr := s.agentsModule.Close(); cerr != nil {
		logger.Warn("[Rosterd] failed to close storage: %v", cerr)
	}
	return err
}

func buildGenericConfig(cfg *config.Config) (genericConfig *genericapiserver.Config, lastErr error) {
	genericConfig = genericapiserver.NewConfig()
	if lastErr = cfg.ApplyTo(genericConfig); lastErr != nil {
		return
	}

	return
}
