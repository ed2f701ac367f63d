package show

import (
	"context"
	"strconv"
	"testing"

	"github.com/bytedance/gg/gptr"
	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *entity.Agent {
	return &entity.Agent{
		ID: 7, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890",
		Qualification: "BSc", Age: 36, Birthdate: "1988-01-02",
	}
}

func TestMarkdownOmitsOptionalFields(t *testing.T) {
	md := Markdown(sample(), 80)
	assert.Equal(t, "# Ada\n\n"+
		"- **Email:** ada@example.com\n"+
		"- **Phone:** 1234567890\n"+
		"- **Qualification:** BSc\n"+
		"- **Age:** 36\n"+
		"- **Birthdate:** 1988-01-02\n", md)
	assert.NotContains(t, md, "Abcdef1!")
}

func TestMarkdownOptionalFields(t *testing.T) {
	a := sample()
	a.Address = "12 Long Street Name Apartment 4 Springfield"
	a.Department = "R&D"
	a.Experience = gptr.Of(2.5)

	md := Markdown(a, 24)
	assert.Contains(t, md, "- **Address:** 12 Long Street Name  \n  Apartment 4  \n  Springfield\n")
	assert.Contains(t, md, "- **Department:** R&D\n")
	assert.Contains(t, md, "- **Experience:** 2.5 yrs\n")
}

func TestRun(t *testing.T) {
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	defer f.Close()

	ctx := context.Background()
	svc, err := f.AgentService(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.ReplaceAgents(ctx, []*entity.Agent{sample()}))

	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	require.NoError(t, o.Complete(&cobra.Command{Use: "show"}, []string{strconv.Itoa(7)}))
	require.NoError(t, o.Run(ctx))
	assert.Contains(t, out.String(), "Ada")
	assert.Contains(t, out.String(), "ada@example.com")

	out.Reset()
	o.Raw = true
	require.NoError(t, o.Run(ctx))
	assert.Equal(t, Markdown(sample(), 80), out.String())
}

func TestRunNotFound(t *testing.T) {
	f := cmdutil.NewFactory(cmdutil.ClientConfig{DataDir: t.TempDir()})
	defer f.Close()

	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(f, streams)
	require.NoError(t, o.Complete(&cobra.Command{Use: "show"}, []string{"99"}))
	assert.ErrorContains(t, o.Run(context.Background()), "not found")
}
