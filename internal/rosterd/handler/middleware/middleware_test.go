package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.Use(mw...)
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return g
}

func TestRequestIDGenerated(t *testing.T) {
	g := newEngine(RequestID())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := w.Header().Get(XRequestIDKey)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	g := newEngine(RequestID(), Logger())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(XRequestIDKey, "abc-123")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(XRequestIDKey))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestCORS(t *testing.T) {
	g := newEngine(CORS([]string{"http://dashboard.local"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
