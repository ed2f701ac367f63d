package options

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/pkg/server"
	"github.com/spf13/pflag"
)

// ServerRunOptions contains the options while running a generic api server.
type ServerRunOptions struct {
	Mode            string        `json:"mode"             mapstructure:"mode"`
	Healthz         bool          `json:"healthz"          mapstructure:"healthz"`
	EnableProfiling bool          `json:"profiling"        mapstructure:"profiling"`
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewServerRunOptions creates a new ServerRunOptions object with default parameters.
func NewServerRunOptions() *ServerRunOptions {
	defaults := server.NewConfig()

	return &ServerRunOptions{
		Mode:            defaults.Mode,
		Healthz:         defaults.Healthz,
		EnableProfiling: defaults.EnableProfiling,
		ShutdownTimeout: defaults.ShutdownTimeout,
	}
}

// ApplyTo applies the run options to the method receiver and returns self.
func (s *ServerRunOptions) ApplyTo(c *server.Config) error {
	c.Mode = s.Mode
	c.Healthz = s.Healthz
	c.EnableProfiling = s.EnableProfiling
	c.ShutdownTimeout = s.ShutdownTimeout

	return nil
}

// Validate checks validation of ServerRunOptions.
func (s *ServerRunOptions) Validate() []error {
	var errs []error

	switch s.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("--server.mode must be one of debug, release, test; got %q", s.Mode))
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("--server.shutdown-timeout cannot be negative"))
	}

	return errs
}

// AddFlags adds flags for a specific APIServer to the specified FlagSet.
func (s *ServerRunOptions) AddFlags(fs *pflag.FlagSet) {
	// Note: the weird ""+ in below lines seems to be the only way to get gofmt to
	// arrange these text blocks sensibly. Grrr.
	fs.StringVar(&s.Mode, "server.mode", s.Mode, ""+
		"Start the server in a specified server mode. Supported server mode: debug, test, release.")

	fs.BoolVar(&s.Healthz, "server.healthz", s.Healthz, ""+
		"Add self readiness check and install /healthz router.")

	fs.BoolVar(&s.EnableProfiling, "server.profiling", s.EnableProfiling, ""+
		"Enable profiling via web interface host:port/debug/pprof/.")

	fs.DurationVar(&s.ShutdownTimeout, "server.shutdown-timeout", s.ShutdownTimeout, ""+
		"How long to wait for in-flight requests when shutting down.")
}
