package add

import (
	"context"
	"fmt"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options is an options struct to support add subcommand.
type Options struct {
	Agent cmdutil.AgentFlags

	flags   *pflag.FlagSet
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	addLong = templates.LongDesc(`
		Add a new agent.

		Name, email, password, phone, qualification, age and birthdate are
		required, and the age must match the birthdate. Every problem is
		reported at once, one line per field.`)

	addExample = templates.Examples(`
		# Add an agent
		rosterctl add --name "Ada Lovelace" --email ada@example.com --password 'Abcdef1!' \
		  --phone 1234567890 --qualification BSc --age 36 --birthdate 1988-01-02

		# Add an agent with the optional fields
		rosterctl add --name Grace --email grace@example.com --password 'Abcdef1!' \
		  --phone 0987654321 --qualification PhD --age 45 --birthdate 1979-03-04 \
		  --address "1 Navy Yard" --department Research --experience 20`)
)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdAdd returns new initialized instance of add sub command.
func NewCmdAdd(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "add [flags]",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"create"},
		Short:                 "Add a new agent",
		Long:                  addLong,
		Example:               addExample,
		Args:                  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			o.Complete(cmd)
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}

	o.Agent.AddFlags(cmd.Flags())
	return cmd
}

// Complete completes all the required options.
func (o *Options) Complete(cmd *cobra.Command) {
	o.flags = cmd.Flags()
}

// Run executes an add subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	agent, err := svc.CreateAgent(ctx, o.Agent.Input(o.flags, nil))
	if err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "agent/%d created\n", agent.ID)
	return nil
}
