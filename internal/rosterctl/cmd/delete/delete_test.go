package delete

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) cmdutil.Factory {
	t.Helper()
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	t.Cleanup(func() { _ = f.Close() })

	svc, err := f.AgentService(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceAgents(context.Background(), []*entity.Agent{{
		ID: 3, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890",
		Qualification: "BSc", Age: 36, Birthdate: "1988-01-02",
	}}))
	return f
}

func remaining(t *testing.T, f cmdutil.Factory) int {
	t.Helper()
	svc, err := f.AgentService(context.Background())
	require.NoError(t, err)
	agents, err := svc.ListAgents(context.Background())
	require.NoError(t, err)
	return len(agents)
}

func newOptions(t *testing.T, f cmdutil.Factory, terminal bool, answer string, args ...string) (*Options, *bytes.Buffer) {
	t.Helper()
	streams, in, out, _ := genericclioptions.NewTestIOStreams()
	in.WriteString(answer)

	o := NewOptions(f, streams)
	o.isTerminal = func(io.Reader) bool { return terminal }
	cmd := &cobra.Command{Use: "delete"}
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	require.NoError(t, o.Complete(cmd, cmd.Flags().Args()))
	return o, out
}

func TestDeleteWithYes(t *testing.T) {
	f := seed(t)
	o, out := newOptions(t, f, false, "", "3", "--yes")
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, "agent/3 deleted\n", out.String())
	assert.Zero(t, remaining(t, f))
}

func TestDeleteRefusesWithoutTerminal(t *testing.T) {
	f := seed(t)
	o, _ := newOptions(t, f, false, "y\n", "3")
	assert.ErrorContains(t, o.Run(context.Background()), "--yes")
	assert.Equal(t, 1, remaining(t, f))
}

func TestDeleteConfirm(t *testing.T) {
	f := seed(t)

	o, out := newOptions(t, f, true, "n\n", "3")
	require.NoError(t, o.Run(context.Background()))
	assert.Contains(t, out.String(), "Aborted.")
	assert.Equal(t, 1, remaining(t, f))

	o, out = newOptions(t, f, true, "yes\n", "3")
	require.NoError(t, o.Run(context.Background()))
	assert.Contains(t, out.String(), `Delete agent "Ada" (3)? [y/N]: `)
	assert.Zero(t, remaining(t, f))
}

func TestDeleteUnknown(t *testing.T) {
	f := seed(t)
	o, _ := newOptions(t, f, false, "", "99", "--yes")
	err := o.Run(context.Background())
	assert.True(t, errors.Is(err, errno.ErrAgentNotFound), err)
}
