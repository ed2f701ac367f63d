package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	cmdutil "github.com/kiosk404/roster/internal/rosterctl/cmd/util"
	"github.com/kiosk404/roster/pkg/cli/genericclioptions"
	"github.com/kiosk404/roster/pkg/utils/json"
	"github.com/kiosk404/roster/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionClientOnly(t *testing.T) {
	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(cmdutil.NewFactory(cmdutil.ClientConfig{}), streams)
	o.Short = true
	require.NoError(t, o.Validate())
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, "Client Version: "+version.Get().String()+"\n", out.String())
}

func TestVersionWithServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/version", r.URL.Path)
		data, _ := json.Marshal(version.Info{GitVersion: "v9.9.9"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	streams, _, out, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(cmdutil.NewFactory(cmdutil.ClientConfig{Server: srv.URL}), streams)
	o.Output = "json"
	require.NoError(t, o.Run(context.Background()))

	var v Version
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	require.NotNil(t, v.ServerVersion)
	assert.Equal(t, "v9.9.9", v.ServerVersion.GitVersion)
	assert.Equal(t, version.Get().GoVersion, v.ClientVersion.GoVersion)
}

func TestVersionValidate(t *testing.T) {
	streams, _, _, _ := genericclioptions.NewTestIOStreams()
	o := NewOptions(cmdutil.NewFactory(cmdutil.ClientConfig{}), streams)
	o.Output = "yaml"
	assert.Error(t, o.Validate())
}
