package cmd

import (
	"fmt"

	"github.com/kiosk404/roster/pkg/version"
)

const bannerText = `
  ____           _            
 |  _ \ ___  ___| |_ ___ _ __ 
 | |_) / _ \/ __| __/ _ \ '__|
 |  _ < (_) \__ \ ||  __/ |   
 |_| \_\___/|___/\__\___|_|   

        Roster Agent Records
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
