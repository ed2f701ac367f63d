package delete

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/moby/term"
	"github.com/spf13/cobra"
)

// Options is an options struct to support delete subcommand.
type Options struct {
	Yes bool

	id         int64
	isTerminal func(io.Reader) bool
	factory    cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	deleteLong = templates.LongDesc(`
		Delete an agent.

		You are asked to confirm unless --yes is given. Without a terminal on
		standard input there is nobody to ask, so --yes is required.`)

	deleteExample = templates.Examples(`
		# Delete agent 1718000000000 after confirming
		rosterctl delete 1718000000000

		# Delete without asking
		rosterctl delete 1718000000000 --yes`)
)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{
		factory:    f,
		IOStreams:  ioStreams,
		isTerminal: stdinIsTerminal,
	}
}

// NewCmdDelete returns new initialized instance of delete sub command.
func NewCmdDelete(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "delete ID",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"rm"},
		Short:                 "Delete an agent",
		Long:                  deleteLong,
		Example:               deleteExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Complete(cmd, args))
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", o.Yes, "Delete without asking for confirmation.")
	return cmd
}

// Complete completes all the required options.
func (o *Options) Complete(cmd *cobra.Command, args []string) error {
	id, err := cmdutil.ParseID(cmd.CommandPath(), args[0])
	if err != nil {
		return err
	}
	o.id = id
	return nil
}

// Run executes a delete subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}

	if !o.Yes {
		if !o.isTerminal(o.In) {
			return fmt.Errorf("refusing to prompt without a terminal, pass --yes to delete agent %d", o.id)
		}
		agent, err := svc.GetAgent(ctx, o.id)
		if err != nil {
			return err
		}
		ok, err := o.confirm(fmt.Sprintf("Delete agent %q (%d)?", agent.Name, agent.ID))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(o.Out, "Aborted.")
			return nil
		}
	}

	if err := svc.DeleteAgent(ctx, o.id); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "agent/%d deleted\n", o.id)
	return nil
}

func (o *Options) confirm(question string) (bool, error) {
	fmt.Fprintf(o.Out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(o.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func stdinIsTerminal(in io.Reader) bool {
	_, isTerminal := term.GetFdInfo(in)
	return isTerminal
}
