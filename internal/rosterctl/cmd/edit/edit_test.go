package edit

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (cmdutil.Factory, *entity.Agent) {
	t.Helper()
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	t.Cleanup(func() { _ = f.Close() })

	a := &entity.Agent{
		ID: 11, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890",
		Qualification: "BSc", Age: 36, Birthdate: "1988-01-02", Department: "R&D",
	}
	svc, err := f.AgentService(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceAgents(context.Background(), []*entity.Agent{a}))
	return f, a
}

func newCmd(t *testing.T, o *Options, args []string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "edit"}
	o.Agent.AddFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	require.NoError(t, o.Complete(cmd, cmd.Flags().Args()))
	return cmd
}

// ageFor returns the age and birthdate the live validator accepts.
func ageFor(t *testing.T) (string, string) {
	t.Helper()
	birthdate := "1990-01-01"
	age, err := validation.AgeOn(birthdate, time.Now())
	require.NoError(t, err)
	return strconv.Itoa(age), birthdate
}

func TestEditOverlaysChangedFlags(t *testing.T) {
	f, a := seed(t)
	age, birthdate := ageFor(t)

	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	cmd := newCmd(t, o, []string{strconv.FormatInt(a.ID, 10), "--phone", "5550001111", "--age", age, "--birthdate", birthdate})
	require.NoError(t, o.Validate(cmd))
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, "agent/11 updated\n", out.String())

	svc, _ := f.AgentService(context.Background())
	got, err := svc.GetAgent(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "5550001111", got.Phone)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "R&D", got.Department)
	assert.Equal(t, birthdate, got.Birthdate)
}

func TestEditRequiresAField(t *testing.T) {
	f, a := seed(t)
	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	cmd := newCmd(t, o, []string{strconv.FormatInt(a.ID, 10)})
	assert.ErrorContains(t, o.Validate(cmd), "at least one field flag")
}

func TestEditUnknownAgent(t *testing.T) {
	f, _ := seed(t)
	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	newCmd(t, o, []string{"404", "--name", "Nobody"})
	err := o.Run(context.Background())
	assert.True(t, errors.Is(err, errno.ErrAgentNotFound), err)
}

func TestEditInvalid(t *testing.T) {
	f, a := seed(t)
	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	newCmd(t, o, []string{strconv.FormatInt(a.ID, 10), "--email", "not-an-email"})

	err := o.Run(context.Background())
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("email", validation.ReasonInvalidFormat))
}
