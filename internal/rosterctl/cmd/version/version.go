package version

import (
	"context"
	"fmt"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/kiosk404/roster/pkg/utils/json"
	"github.com/kiosk404/roster/pkg/version"
	"github.com/spf13/cobra"
)

// Version is a struct for version information.
type Version struct {
	ClientVersion *version.Info `json:"clientVersion,omitempty"`
	ServerVersion *version.Info `json:"serverVersion,omitempty"`
}

// Options is an options struct to support version subcommand.
type Options struct {
	ClientOnly bool
	Short      bool
	Output     string

	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var versionExample = templates.Examples(`
		# Print the client and, with --server, the gateway version
		rosterctl version

		# Print the version as JSON
		rosterctl version -o json`)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdVersion returns a cobra command for fetching versions.
func NewCmdVersion(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the client and server version information",
		Long:    "Print the client and server version information for the current context",
		Example: versionExample,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Validate())
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&o.ClientOnly, "client", o.ClientOnly, "If true, shows client version only (no server required).")
	cmd.Flags().BoolVar(&o.Short, "short", o.Short, "If true, print just the version number.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", o.Output, "Output format. Only 'json' is supported.")
	return cmd
}

// Validate validates the provided options.
func (o *Options) Validate() error {
	if o.Output != "" && o.Output != "json" {
		return fmt.Errorf("--output must be 'json'")
	}
	return nil
}

// Run executes version command.
func (o *Options) Run(ctx context.Context) error {
	clientVersion := version.Get()
	v := Version{ClientVersion: &clientVersion}

	var serverErr error
	if !o.ClientOnly && o.factory.Server() != "" {
		info, err := cmdutil.NewClient(o.factory.Server()).ServerVersion(ctx)
		if err != nil {
			serverErr = err
		} else {
			v.ServerVersion = &info
		}
	}

	switch o.Output {
	case "":
		if o.Short {
			fmt.Fprintf(o.Out, "Client Version: %s\n", clientVersion.String())
			if v.ServerVersion != nil {
				fmt.Fprintf(o.Out, "Server Version: %s\n", v.ServerVersion.String())
			}
		} else {
			fmt.Fprintf(o.Out, "Client Version: %#v\n", clientVersion)
			if v.ServerVersion != nil {
				fmt.Fprintf(o.Out, "Server Version: %#v\n", *v.ServerVersion)
			}
		}
	case "json":
		marshalled, err := json.MarshalIndent(&v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, string(marshalled))
	}

	return serverErr
}
