package homedir

import (
	"os"
)

// HomeDir returns the home directory for the current user, or "." when it
// cannot be determined.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return "."
}
