package list

import (
	"context"
	"strings"
	"testing"

	"github.com/bytedance/gg/gptr"
	"github.com/fatih/color"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEmpty(t *testing.T) {
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	defer f.Close()

	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	require.NoError(t, NewOptions(f, streams).Run(context.Background()))
	assert.Equal(t, EmptyMessage+"\n", out.String())
}

func TestListTable(t *testing.T) {
	color.NoColor = true
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	defer f.Close()

	ctx := context.Background()
	svc, err := f.AgentService(ctx)
	require.NoError(t, err)
	// Replace skips the age check, so the fixture does not depend on today.
	require.NoError(t, svc.ReplaceAgents(ctx, []*entity.Agent{
		{ID: 1, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890", Qualification: "BSc", Age: 36, Birthdate: "1988-01-02"},
		{ID: 2, Name: "Grace", Email: "grace@example.com", Password: "Abcdef1!", Phone: "0987654321", Qualification: "PhD", Age: 45, Birthdate: "1979-03-04", Experience: gptr.Of(20.0)},
	}))

	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	require.NoError(t, NewOptions(f, streams).Run(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "EMAIL", "PHONE", "QUALIFICATION", "AGE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Ada", "ada@example.com", "1234567890", "BSc", "36"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "Grace", "grace@example.com", "0987654321", "PhD", "45"}, strings.Fields(lines[2]))
}
