package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericAPIServerRoutes(t *testing.T) {
	cfg := NewConfig()
	cfg.Mode = gin.TestMode
	cfg.EnableProfiling = true
	s, err := cfg.Complete().New()
	require.NoError(t, err)

	for _, path := range []string{"/healthz", "/version", "/debug/pprof/"} {
		w := httptest.NewRecorder()
		s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestHealthzDisabled(t *testing.T) {
	cfg := NewConfig()
	cfg.Mode = gin.TestMode
	cfg.Healthz = false
	s, err := cfg.Complete().New()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinHostPort(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", JoinHostPort("0.0.0.0", 8080))
	assert.Equal(t, "[::1]:9", JoinHostPort("::1", 9))
}
