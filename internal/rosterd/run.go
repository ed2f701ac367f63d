package rosterd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/kiosk404/roster/internal/rosterd/config"
)

// Run runs the specified APIServer until SIGINT or SIGTERM. This should
// never exit otherwise.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := createAPIServer(ctx, cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run(ctx)
}
