// Package verflag defines utility functions to handle command line flags
// related to version of roster.
package verflag

import (
	"fmt"
	"io"
	"os"

	"github.com/kiosk404/roster/pkg/version"
	"github.com/spf13/pflag"
)

const versionFlagName = "version"

var versionFlag bool

// AddFlags registers this package's flags on arbitrary FlagSets, such that they point to the
// same value as the global flags.
func AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&versionFlag, versionFlagName, false, "Print version information and quit.")
}

// PrintAndExitIfRequested will check if the -version flag was passed
// and, if so, print the version and exit.
func PrintAndExitIfRequested() {
	if printIfRequested(os.Stdout) {
		os.Exit(0)
	}
}

func printIfRequested(w io.Writer) bool {
	if !versionFlag {
		return false
	}
	fmt.Fprint(w, version.Get().Text())
	return true
}
