package show

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/mitchellh/go-wordwrap"
	"github.com/moby/term"
	"github.com/spf13/cobra"
)

const (
	defaultWidth = 80
	// addressIndent is what the list bullet and label take from the width.
	addressIndent = 4
)

// Options is an options struct to support show subcommand.
type Options struct {
	Raw bool

	id      int64
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	showLong = templates.LongDesc(`
		Show the details of one agent.

		Address, department and experience are only listed when they were
		provided. The password is never printed.`)

	showExample = templates.Examples(`
		# Show agent 1718000000000
		rosterctl show 1718000000000

		# Print the markdown source instead of rendering it
		rosterctl show 1718000000000 --raw`)
)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdShow returns new initialized instance of show sub command.
func NewCmdShow(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "show ID",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"get"},
		Short:                 "Show the details of an agent",
		Long:                  showLong,
		Example:               showExample,
		Args:                  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Complete(cmd, args))
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&o.Raw, "raw", o.Raw, "Print markdown without rendering it.")
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

// Run executes a show subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}
	agent, err := svc.GetAgent(ctx, o.id)
	if err != nil {
		return err
	}

	width, isTerminal := terminalWidth(o.Out)
	md := Markdown(agent, width)
	if o.Raw {
		_, err = io.WriteString(o.Out, md)
		return err
	}

	style := "notty"
	if isTerminal {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render agent: %w", err)
	}
	_, err = io.WriteString(o.Out, out)
	return err
}

// Markdown renders the agent detail view. The address keeps its own line
// breaks and is wrapped to width.
func Markdown(a *entity.Agent, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name)
	for _, d := range cmdutil.Details(a) {
		value := d.Value
		if d.Label == "Address" {
			wrapAt := width - addressIndent
			if wrapAt < 1 {
				wrapAt = 1
			}
			// hard breaks, indented to stay inside the list item
			value = strings.ReplaceAll(wordwrap.WrapString(value, uint(wrapAt)), "\n", "  \n  ")
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", d.Label, value)
	}
	return b.String()
}

func terminalWidth(out io.Writer) (int, bool) {
	fd, isTerminal := term.GetFdInfo(out)
	if !isTerminal {
		return defaultWidth, false
	}
	ws, err := term.GetWinsize(fd)
	if err != nil || ws.Width == 0 {
		return defaultWidth, true
	}
	return int(ws.Width), true
}
