package cmd

import (
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents"
	"github.com/spf13/pflag"
)

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP(cmdutil.FlagConfig, "c", "",
		"Read configuration from this file instead of rosterctl.yaml in the working directory or $HOME/.roster.")
	flags.String(cmdutil.FlagServer, "",
		"Address of a rosterd gateway, e.g. http://127.0.0.1:8080. When empty, agents are kept in local storage.")
	flags.String(cmdutil.FlagDataDir, cmdutil.DefaultDataDir(),
		"Directory of the local storage.")
	flags.String(cmdutil.FlagStorage, agents.StoreFile,
		"Local storage backend, 'file' or 'boltdb'.")
	flags.String(cmdutil.FlagLogLevel, "warn",
		"Log level, one of debug, info, warn, error.")
	flags.String(cmdutil.FlagLogFile, "",
		"Write logs to this file instead of stderr.")
}
