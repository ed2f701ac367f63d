package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bytedance/gg/gptr"
	"github.com/fatih/color"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckErr(t *testing.T) {
	color.NoColor = true
	var gotMsg string
	var gotCode int
	BehaviorOnFatal(func(msg string, code int) {
		gotMsg, gotCode = msg, code
	})
	defer DefaultBehaviorOnFatal()

	CheckErr(nil)
	assert.Zero(t, gotCode)

	CheckErr(errors.New("boom"))
	assert.Equal(t, "error: boom", gotMsg)
	assert.Equal(t, DefaultErrorExitCode, gotCode)

	verrs := validation.Errors{
		{Field: "name", Reason: validation.ReasonRequired, Message: "Name is required"},
		{Field: "age", Reason: validation.ReasonRange, Message: "Age must be between 18 and 100"},
	}
	CheckErr(fmt.Errorf("%w: %w", errno.ErrInvalidAgent, verrs))
	assert.Equal(t, "error: the agent is not valid:\n  name: Name is required\n  age: Age must be between 18 and 100\n", gotMsg)
}

func TestAgentFlagsInput(t *testing.T) {
	var o AgentFlags
	fs := pflag.NewFlagSet("edit", pflag.ContinueOnError)
	o.AddFlags(fs)
	assert.False(t, o.Changed(fs))
	require.NoError(t, fs.Parse([]string{"--name", "Grace", "--age", "40", "--experience", "0"}))
	assert.True(t, o.Changed(fs))

	base := &entity.AgentInput{Name: "Ada", Email: "ada@example.com", Age: gptr.Of(24), Department: "R&D"}
	in := o.Input(fs, base)

	assert.Equal(t, "Grace", in.Name)
	assert.Equal(t, "ada@example.com", in.Email)
	assert.Equal(t, "R&D", in.Department)
	assert.Equal(t, gptr.Of(40), in.Age)
	assert.Equal(t, gptr.Of(0.0), in.Experience)

	// base is untouched
	assert.Equal(t, "Ada", base.Name)
	assert.Equal(t, 24, *base.Age)
	assert.Nil(t, base.Experience)
}

func TestAgentFlagsInputEmpty(t *testing.T) {
	var o AgentFlags
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	o.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--email", "x@y.io"}))

	in := o.Input(fs, nil)
	assert.Equal(t, "x@y.io", in.Email)
	assert.Nil(t, in.Age)
	assert.Nil(t, in.Experience)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("rosterctl show", "1718000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1718000000000), id)

	_, err = ParseID("rosterctl show", "abc")
	assert.ErrorContains(t, err, "See 'rosterctl show -h'")
}

func TestFormatExperience(t *testing.T) {
	assert.Equal(t, "3 yrs", FormatExperience(3))
	assert.Equal(t, "2.5 yrs", FormatExperience(2.5))
	assert.Equal(t, "0 yrs", FormatExperience(0))
}

func TestDetails(t *testing.T) {
	a := &entity.Agent{ID: 1, Name: "Ada", Email: "ada@example.com", Password: "Abcdef1!", Phone: "1234567890",
		Qualification: "BSc", Age: 24, Birthdate: "2000-06-15"}

	labels := func(ds []Detail) []string {
		out := make([]string, 0, len(ds))
		for _, d := range ds {
			out = append(out, d.Label)
		}
		return out
	}
	assert.Equal(t, []string{"Email", "Phone", "Qualification", "Age", "Birthdate"}, labels(Details(a)))

	a.Address = "1 Main St"
	a.Department = "R&D"
	a.Experience = gptr.Of(0.0)
	ds := Details(a)
	assert.Equal(t, []string{"Email", "Phone", "Qualification", "Age", "Birthdate", "Address", "Department", "Experience"}, labels(ds))
	assert.Equal(t, "0 yrs", ds[7].Value)
}
