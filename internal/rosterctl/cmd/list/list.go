package list

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
)

// EmptyMessage is printed instead of a table when there are no agents.
const EmptyMessage = "No agents added yet."

const maxColWidth = 40

// Options is an options struct to support list subcommand.
type Options struct {
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var listExample = templates.Examples(`
		# List every agent in insertion order
		rosterctl list

		# List the agents held by a running gateway
		rosterctl list --server http://127.0.0.1:8080`)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdList returns new initialized instance of list sub command.
func NewCmdList(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "list",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ls"},
		Short:                 "List agents",
		Long:                  "List agents as a table, in the order they were added.",
		Example:               listExample,
		Args:                  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}
	return cmd
}

// Run executes a list subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	agents, err := svc.ListAgents(ctx)
	if err != nil {
		return err
	}

	if len(agents) == 0 {
		fmt.Fprintln(o.Out, EmptyMessage)
		return nil
	}
	fmt.Fprintln(o.Out, Table(agents))
	return nil
}

// Table lays agents out in the list view columns.
func Table(agents []*entity.Agent) *uitable.Table {
	header := color.New(color.FgGreen, color.Bold).SprintFunc()

	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Separator = "  "
	table.AddRow(header("ID"), header("NAME"), header("EMAIL"), header("PHONE"), header("QUALIFICATION"), header("AGE"))
	for _, a := range agents {
		table.AddRow(strconv.FormatInt(a.ID, 10), a.Name, a.Email, a.Phone, a.Qualification, strconv.Itoa(a.Age))
	}
	return table
}
