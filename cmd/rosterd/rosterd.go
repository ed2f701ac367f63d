// rosterd is the roster gateway: it serves the agent records over HTTP.
package main

import (
	"github.com/kiosk404/roster/internal/rosterd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	rosterd.NewApp("rosterd").Run()
}
