package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/moby/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Options is an options struct to support dashboard subcommand.
type Options struct {
	factory cmdutil.Factory
	genericclioptions.IOStreams
}

var (
	dashboardLong = templates.LongDesc(`
		Open an interactive dashboard of the agents.

		The list, the detail drawer, the add and edit form and delete
		confirmation all live in one screen. Changes made elsewhere, by another
		rosterctl or through the gateway, show up as they happen.`)

	dashboardExample = templates.Examples(`
		# Browse the local agents
		rosterctl dashboard

		# Browse the agents of a running gateway
		rosterctl dashboard --server http://127.0.0.1:8080`)
)

// NewOptions returns an initialized Options instance.
func NewOptions(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *Options {
	return &Options{factory: f, IOStreams: ioStreams}
}

// NewCmdDashboard returns new initialized instance of dashboard sub command.
func NewCmdDashboard(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewOptions(f, ioStreams)

	cmd := &cobra.Command{
		Use:                   "dashboard",
		DisableFlagsInUseLine: true,
		Aliases:               []string{"ui"},
		Short:                 "Open the interactive agent dashboard",
		Long:                  dashboardLong,
		Example:               dashboardExample,
		Args:                  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.CheckErr(o.Validate())
			cmdutil.CheckErr(o.Run(cmd.Context()))
		},
	}
	return cmd
}

// Validate makes sure there is a terminal to draw on.
func (o *Options) Validate() error {
	if _, isTerminal := term.GetFdInfo(o.In); !isTerminal {
		return errors.New("the dashboard needs an interactive terminal")
	}
	return nil
}

// Run executes a dashboard subcommand using the specified options.
func (o *Options) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	svc, err := o.factory.AgentService(ctx)
	if err != nil {
		return err
	}

	// Log lines written to the terminal would tear the screen.
	if viper.GetString(cmdutil.FlagLogFile) == "" {
		logger.SetOutput(io.Discard)
		defer logger.SetOutput(o.ErrOut)
	}

	changes := make(chan entity.ChangeEvent, 1)
	cancel := svc.Subscribe(func(ev entity.ChangeEvent) { latest(changes, ev) })
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, svc, changes),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(o.In),
		tea.WithOutput(o.Out),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}

// latest queues ev, replacing an event the dashboard has not picked up yet.
// Each event carries the whole collection, so only the newest matters.
func latest(ch chan entity.ChangeEvent, ev entity.ChangeEvent) {
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
