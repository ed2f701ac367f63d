// rosterctl is the command line client for agent records.
package main

import (
	"os"

	"github.com/kiosk404/roster/internal/rosterctl/cmd"
)

func main() {
	command := cmd.NewDefaultRosterCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
