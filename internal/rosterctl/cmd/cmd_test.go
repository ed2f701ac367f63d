package cmd

import (
	"testing"

	"github.com/fatih/color"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	root := newRosterCtlCommand(f, streams)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())

	help := out.String()
	assert.Contains(t, help, "Roster Agent Records")
	assert.Contains(t, help, "Basic Commands:")
	assert.Contains(t, help, "Backup Commands:")
	assert.Contains(t, help, "Interactive Commands:")
	for _, name := range []string{"list", "show", "add", "edit", "delete", "import", "export", "dashboard", "version"} {
		assert.Contains(t, help, "  "+name+" ", name)
	}
	assert.Contains(t, help, "--server")
	assert.Contains(t, help, "--data-dir")
}

func TestSubcommandsShareTheFactory(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()

	exec := func(args ...string) string {
		streams, _, out, _ := genericclioptions.NewTestIOStreams()
		f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: dir})
		root := newRosterCtlCommand(f, streams)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	assert.Equal(t, "No agents added yet.\n", exec("list"))
	assert.Equal(t, "[]\n", exec("export"))
}
