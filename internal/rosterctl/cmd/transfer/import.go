package transfer

import (
	"context"
	"fmt"
	"io"
	"os"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
)

// stdio stands for standard input or output in place of a file name.
const stdio = "-"

// ImportOptions is an options struct to support import subcommand.
type ImportOptions struct {
	file    string
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	importLong = templates.LongDesc(`
		Replace every agent with the contents of a JSON file.

		The file holds a JSON array of agents, as written by export. Records
		without an id get a fresh one; two records with the same id are
		rejected. Each record is validated, except that its age is not
		checked against today's date, so an old backup stays importable.`)

	importExample = templates.Examples(`
		# Restore a backup
		rosterctl import agents.json

		# Copy the agents of a gateway into local storage
		rosterctl export --server http://127.0.0.1:8080 | rosterctl import -`)
)

// NewImportOptions returns an initialized ImportOptions instance.
func NewImportOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *ImportOptions {
	return &ImportOptions{factory: f, IOStreams: ioStreams}
}

// NewCmdImport returns new initialized instance of import sub command.
func NewCmdImport(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewImportOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "import FILE",
		DisableFlagsInUseLine: true,
		Short:                 "Replace all agents from a JSON file",
		Long:                  importLong,
		Example:               importExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			o.Complete(args)
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}
	return cmd
}

// Complete completes all the required options.
func (o *ImportOptions) Complete(args []string) {
	o.file = args[0]
}

// Run executes an import subcommand using the specified options.
func (o *ImportOptions) Run(ctx context.Context) error {
	data, err := o.read()
	if err != nil {
		return err
	}
	agents, err := entity.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("%s is not a JSON array of agents: %w", o.file, err)
	}

	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	if err := svc.ReplaceAgents(ctx, agents); err != nil {
		return err
	}
	fmt.Fprintf(o.Out, "%d agents imported\n", len(agents))
	return nil
}

func (o *ImportOptions) read() ([]byte, error) {
	if o.file == stdio {
		return io.ReadAll(o.In)
	}
	data, err := os.ReadFile(o.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", o.file, err)
	}
	return data, nil
}
