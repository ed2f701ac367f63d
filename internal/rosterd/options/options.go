package options

import (
	genericoptions "github.com/kiosk404/roster/internal/pkg/options"
	"github.com/kiosk404/roster/internal/pkg/server"
	"github.com/kiosk404/roster/pkg/utils/cliflag"
	"github.com/kiosk404/roster/pkg/utils/json"
)

// Options runs a rosterd gateway.
type Options struct {
	GenericServerRunOptions *genericoptions.ServerRunOptions       `json:"server"   mapstructure:"server"`
	InsecureServing         *genericoptions.InsecureServingOptions `json:"insecure" mapstructure:"insecure"`
	GatewayOptions          *GatewayOptions                        `json:"gateway"  mapstructure:"gateway"`
	StorageOptions          *StorageOptions                        `json:"storage"  mapstructure:"storage"`
	Log                     *genericoptions.LogOptions             `json:"log"      mapstructure:"log"`
}

// NewOptions creates a new Options object with default parameters.
func NewOptions() *Options {
	return &Options{
		GenericServerRunOptions: genericoptions.NewServerRunOptions(),
		InsecureServing:         genericoptions.NewInsecureServingOptions(),
		GatewayOptions:          NewGatewayOptions(),
		StorageOptions:          NewStorageOptions(),
		Log:                     genericoptions.NewLogOptions(),
	}
}

// Flags returns flags for a specific APIServer by section name.
func (o *Options) Flags() (fss cliflag.NamedFlagSets) {
	o.GenericServerRunOptions.AddFlags(fss.FlagSet("generic"))
	o.InsecureServing.AddFlags(fss.FlagSet("insecure serving"))
	o.GatewayOptions.AddFlags(fss.FlagSet("gateway"))
	o.StorageOptions.AddFlags(fss.FlagSet("storage"))
	o.Log.AddFlags(fss.FlagSet("logs"))
	return fss
}

// Validate checks Options and return a slice of found errs.
func (o *Options) Validate() []error {
	var errs []error

	errs = append(errs, o.GenericServerRunOptions.Validate()...)
	errs = append(errs, o.InsecureServing.Validate()...)
	errs = append(errs, o.GatewayOptions.Validate()...)
	errs = append(errs, o.StorageOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)

	return errs
}

// ApplyTo applies the run options to the method receiver and returns self.
func (o *Options) ApplyTo(c *server.Config) error {
	if err := o.GenericServerRunOptions.ApplyTo(c); err != nil {
		return err
	}
	return o.InsecureServing.ApplyTo(c)
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}

// Complete set default Options.
func (o *Options) Complete() error {
	return nil
}
