package app

import (
	"errors"
	"testing"

	"github.com/kiosk404/roster/pkg/utils/cliflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOptions struct {
	Name      string `mapstructure:"name"`
	completed bool
	invalid   bool
}

func (o *testOptions) Flags() (fss cliflag.NamedFlagSets) {
	fss.FlagSet("test").StringVar(&o.Name, "name", "default", "a name")
	return fss
}

func (o *testOptions) Validate() []error {
	if o.invalid {
		return []error{errors.New("bad")}
	}
	return nil
}

func (o *testOptions) Complete() error {
	o.completed = true
	return nil
}

func TestAppRunsWithOptions(t *testing.T) {
	opts := &testOptions{}
	var ran string
	a := NewApp("test app", "roster-test",
		WithOptions(opts),
		WithNoConfig(),
		WithSilence(),
		WithDefaultValidArgs(),
		WithRunFunc(func(basename string) error {
			ran = basename
			return nil
		}),
	)

	cmd := a.Command()
	cmd.SetArgs([]string{"--name=ada"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "roster-test", ran)
	assert.Equal(t, "ada", opts.Name)
	assert.True(t, opts.completed)
}

func TestAppRejectsInvalidOptions(t *testing.T) {
	opts := &testOptions{invalid: true}
	a := NewApp("test app", "roster-test",
		WithOptions(opts),
		WithNoConfig(),
		WithSilence(),
		WithRunFunc(func(string) error { return nil }),
	)

	cmd := a.Command()
	cmd.SetArgs([]string{})
	assert.ErrorContains(t, cmd.Execute(), "invalid options")
}

func TestAppDefaultValidArgs(t *testing.T) {
	a := NewApp("test app", "roster-test", WithNoConfig(), WithDefaultValidArgs(),
		WithRunFunc(func(string) error { return nil }))

	cmd := a.Command()
	cmd.SetArgs([]string{"extra"})
	assert.ErrorContains(t, cmd.Execute(), "does not take any arguments")
}
