package options

import (
	"fmt"

	"github.com/kiosk404/roster/pkg/logger"
	"github.com/spf13/pflag"
)

// LogOptions contains configuration items related to logging.
type LogOptions struct {
	Level      string `json:"level"       mapstructure:"level"`
	Format     string `json:"format"      mapstructure:"format"`
	OutputPath string `json:"output-path" mapstructure:"output-path"`
}

// NewLogOptions creates a LogOptions object with default parameters.
func NewLogOptions() *LogOptions {
	defaults := logger.NewOptions()
	return &LogOptions{
		Level:      defaults.Level,
		Format:     defaults.Format,
		OutputPath: defaults.OutputPath,
	}
}

// Validate verifies flags passed to LogOptions.
func (o *LogOptions) Validate() []error {
	var errs []error

	switch o.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("--log.level must be one of debug, info, warn, error; got %q", o.Level))
	}
	switch o.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("--log.format must be text or json; got %q", o.Format))
	}

	return errs
}

// AddFlags adds flags for log to the specified FlagSet object.
func (o *LogOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Level, "log.level", o.Level, "Minimum log output `LEVEL`.")
	fs.StringVar(&o.Format, "log.format", o.Format, "Log output `FORMAT`, support text or json format.")
	fs.StringVar(&o.OutputPath, "log.output-path", o.OutputPath, "Log output destination: stdout, stderr or a file path.")
}

// ToLoggerOptions converts to the options understood by pkg/logger.
func (o *LogOptions) ToLoggerOptions() *logger.Options {
	return &logger.Options{
		Level:      o.Level,
		Format:     o.Format,
		OutputPath: o.OutputPath,
	}
}
