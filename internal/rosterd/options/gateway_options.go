package options

import (
	"fmt"
	"time"

	v1 "github.com/kiosk404/roster/internal/rosterd/handler/v1"
	"github.com/spf13/pflag"
)

// GatewayOptions holds the gateway-level configuration for HTTP API endpoints.
type GatewayOptions struct {
	// AllowOrigins lists the CORS origins allowed to call the API. Empty allows any.
	AllowOrigins []string `json:"allow-origins" mapstructure:"allow-origins"`
	// WatchKeepAlive is the ping interval of idle watch streams.
	WatchKeepAlive time.Duration `json:"watch-keepalive" mapstructure:"watch-keepalive"`
}

// NewGatewayOptions creates a GatewayOptions object with default parameters.
func NewGatewayOptions() *GatewayOptions {
	return &GatewayOptions{
		AllowOrigins:   []string{},
		WatchKeepAlive: v1.DefaultKeepAlive,
	}
}

// Validate verifies flags passed to GatewayOptions.
func (o *GatewayOptions) Validate() []error {
	var errs []error
	if o.WatchKeepAlive <= 0 {
		errs = append(errs, fmt.Errorf("--gateway.watch-keepalive must be positive"))
	}
	return errs
}

// AddFlags adds flags related to the gateway to the specified FlagSet.
func (o *GatewayOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.AllowOrigins, "gateway.allow-origins", o.AllowOrigins, ""+
		"CORS origins allowed to call the API. Empty allows any origin.")
	fs.DurationVar(&o.WatchKeepAlive, "gateway.watch-keepalive", o.WatchKeepAlive, ""+
		"Interval between ping events on an idle watch stream.")
}
