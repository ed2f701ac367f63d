package edit

import (
	"context"
	"fmt"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options is an options struct to support edit subcommand.
type Options struct {
	Agent cmdutil.AgentFlags

	id      int64
	flags   *pflag.FlagSet
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	editLong = templates.LongDesc(`
		Edit an existing agent.

		Fields not given on the command line keep their current value. The
		edited record is validated as a whole, like a new one, and keeps its
		id and position in the list.`)

	editExample = templates.Examples(`
		# Change the phone number of agent 1718000000000
		rosterctl edit 1718000000000 --phone 5550001111

		# Record a birthday
		rosterctl edit 1718000000000 --age 37`)
)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdEdit returns new initialized instance of edit sub command.
func NewCmdEdit(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "edit ID [flags]",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"update"},
		Short:                 "Edit an existing agent",
		Long:                  editLong,
		Example:               editExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Complete(cmd, args))
			cmdutil.CheckErr(o.Validate(cmd))
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}

	o.Agent.AddFlags(cmd.Flags())
	return cmd
}

// Complete completes all the required options.
func (o *Options) Complete(cmd *cobra.Command, args []string) error {
	id, err := cmdutil.ParseID(cmd.CommandPath(), args[0])
	if err != nil {
		return err
	}
	o.id = id
	o.flags = cmd.Flags()
	return nil
}

// Validate makes sure there is something to change.
func (o *Options) Validate(cmd *cobra.Command) error {
	if !o.Agent.Changed(o.flags) {
		return cmdutil.UsageErrorf(cmd.CommandPath(), "at least one field flag is required")
	}
	return nil
}

// Run executes an edit subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	existing, err := svc.GetAgent(ctx, o.id)
	if err != nil {
		return err
	}

	in := o.Agent.Input(o.flags, entity.InputFromAgent(existing))
	agent, err := svc.UpdateAgent(ctx, o.id, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "agent/%d updated\n", agent.ID)
	return nil
}
