package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kiosk404/roster/internal/pkg/server"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/add"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/dashboard"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/delete"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/edit"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/list"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/show"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/transfer"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterctl/cmd/version"
	"github.com/kiosk404/roster/internal/rosterctl/utils/templates"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/kiosk404/roster/pkg/utils/cliflag"
	"github.com/kiosk404/roster/pkg/version/verflag"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewDefaultRosterCtlCommand creates the `rosterctl` command with default arguments.
func NewDefaultRosterCtlCommand() *cobra.Command {
	return NewRosterCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

// NewRosterCtlCommand returns new initialized instance of 'rosterctl' root command.
func NewRosterCtlCommand(in io.Reader, out, err io.Writer) *cobra.Command {
	return newRosterCtlCommand(cmdutil.NewDefaultFactory(), genericclioptions.IOStreams{In: in, Out: out, ErrOut: err})
}

func newRosterCtlCommand(f cmdutil.Factory, ioStreams genericclioptions.IOStreams) *cobra.Command {
	// Parent command to which all subcommands are added.
	cmds := &cobra.Command{
		Use:   "rosterctl",
		Short: "rosterctl manages agent records",
		Long: templates.LongDesc(fmt.Sprintf(`%s
		rosterctl lists, adds, edits and deletes agent records.

		By default the agents live in local storage under --data-dir. With
		--server every command goes through a running rosterd gateway instead,
		so several people can work on the same roster.`, Banner())),
		Run: runHelp,
		// Hook before and after Run initialize and write profiles to disk,
		// respectively.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			verflag.PrintAndExitIfRequested()
			if err := initLogging(); err != nil {
				return err
			}
			return initProfiling()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			defer logger.FlushLog()
			if err := f.Close(); err != nil {
				return err
			}
			return flushProfiling()
		},
		SilenceUsage: true,
	}
	cmds.SetIn(ioStreams.In)
	cmds.SetOut(ioStreams.Out)
	cmds.SetErr(ioStreams.ErrOut)

	flags := cmds.PersistentFlags()
	flags.SetNormalizeFunc(cliflag.WarnWordSepNormalizeFunc) // Warn for "_" flags

	// Normalize all flags that are coming from other packages or pre-configurations
	// a.k.a. change all "_" to "-". e.g. glog package
	flags.SetNormalizeFunc(cliflag.WordSepNormalizeFunc)

	addProfilingFlags(flags)
	addGlobalFlags(flags)

	_ = viper.BindPFlags(cmds.PersistentFlags())
	cobra.OnInitialize(func() {
		server.LoadConfig(viper.GetString(cmdutil.FlagConfig), "rosterctl")
	})
	cmds.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	// From this point and forward we get warnings on flags that contain "_" separators
	cmds.SetGlobalNormalizationFunc(cliflag.WarnWordSepNormalizeFunc)

	groups := templates.CommandGroups{
		{
			Message: "Basic Commands:",
			Commands: []*cobra.Command{
				list.NewCmdList(f, ioStreams),
				show.NewCmdShow(f, ioStreams),
				add.NewCmdAdd(f, ioStreams),
				edit.NewCmdEdit(f, ioStreams),
				delete.NewCmdDelete(f, ioStreams),
			},
		},
		{
			Message: "Backup Commands:",
			Commands: []*cobra.Command{
				transfer.NewCmdImport(f, ioStreams),
				transfer.NewCmdExport(f, ioStreams),
			},
		},
		{
			Message: "Interactive Commands:",
			Commands: []*cobra.Command{
				dashboard.NewCmdDashboard(f, ioStreams),
			},
		},
	}
	groups.Add(cmds)

	filters := []string{"options"}
	templates.ActsAsRootCommand(cmds, filters, groups...)

	cmds.AddCommand(version.NewCmdVersion(f, ioStreams))
	verflag.AddFlags(cmds.PersistentFlags())

	return cmds
}

func initLogging() error {
	opts := logger.NewOptions()
	opts.Level = viper.GetString(cmdutil.FlagLogLevel)
	if file := viper.GetString(cmdutil.FlagLogFile); file != "" {
		opts.OutputPath = file
	}
	return logger.Init(opts)
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}
