package transfer

import (
	"context"
	"fmt"
	"os"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/kiosk404/roster/pkg/utils/json"
	"github.com/spf13/cobra"
)

// ExportOptions is an options struct to support export subcommand.
type ExportOptions struct {
	file    string
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	exportLong = templates.LongDesc(`
		Write every agent to a JSON file, or to standard output when no file
		is given. The output can be read back with import.`)

	exportExample = templates.Examples(`
		# Back up all agents
		rosterctl export agents.json

		# Print them
		rosterctl export`)
)

// NewExportOptions returns an initialized ExportOptions instance.
func NewExportOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *ExportOptions {
	return &ExportOptions{factory: f, IOStreams: ioStreams, file: stdio}
}

// NewCmdExport returns new initialized instance of export sub command.
func NewCmdExport(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewExportOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "export [FILE]",
		DisableFlagsInUseLine: true,
		Short:                 "Write all agents to a JSON file",
		Long:                  exportLong,
		Example:               exportExample,
		Args:                  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			o.Complete(args)
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}
	return cmd
}

// Complete completes all the required options.
func (o *ExportOptions) Complete(args []string) {
	if len(args) > 0 {
		o.file = args[0]
	}
}

// Run executes an export subcommand using the specified options.
func (o *ExportOptions) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	agents, err := svc.ListAgents(ctx)
	if err != nil {
		return err
	}
	if agents == nil {
		agents = []*entity.Agent{}
	}

	data, err := json.MarshalIndent(agents, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal agents: %w", err)
	}
	data = append(data, '\n')

	if o.file == stdio {
		_, err = o.Out.Write(data)
		return err
	}
	if err := os.WriteFile(o.file, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.file, err)
	}
	fmt.Fprintf(o.ErrOut, "%d agents exported to %s\n", len(agents), o.file)
	return nil
}
