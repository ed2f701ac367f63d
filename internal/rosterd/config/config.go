package config

import (
	"github.com/kiosk404/roster/internal/rosterd/options"
)

// Config is the running configuration structure of the rosterd service.
type Config struct {
	*options.Options
}

// CreateConfigFromOptions creates a running configuration instance based
// on a given rosterd command line or configuration file option.
func CreateConfigFromOptions(opts *options.Options) (*Config, error) {
	return &Config{opts}, nil
}
