package rosterd

import (
	"github.com/kiosk404/roster/internal/rosterd/config"
	"github.com/kiosk404/roster/internal/rosterd/options"
	"github.com/kiosk404/roster/pkg/app"
	"github.com/kiosk404/roster/pkg/logger"
)

const commandDesc = `The roster gateway serves the agent records over HTTP.

It keeps the agent collection in memory, validates every submission, and
mirrors each change into the configured local storage (boltdb, sqlite, a
JSON file, or nothing). Clients can follow changes live on /v1/agents/watch.`

// NewApp creates an App object with default parameters.
func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("Roster Gateway",
		basename,
		app.WithOptions(opts),
		app.WithDescription(commandDesc),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)

	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		if err := logger.Init(opts.Log.ToLoggerOptions()); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return Run(cfg)
	}
}
