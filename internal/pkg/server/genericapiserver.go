package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/pkg/core"
	"github.com/kiosk404/roster/pkg/logger"
	"github.com/kiosk404/roster/pkg/version"
)

// GenericAPIServer contains state for a roster api server.
type GenericAPIServer struct {
	// InsecureServingInfo holds configuration of the insecure HTTP server.
	InsecureServingInfo *InsecureServingInfo

	// ShutdownTimeout is the timeout used for server shutdown. This specifies the timeout before server
	// gracefully shutdown returns.
	shutdownTimeout time.Duration

	*gin.Engine
	healthz         bool
	enableProfiling bool

	insecureServer *http.Server
}

func initGenericAPIServer(s *GenericAPIServer) {
	s.Setup()
	s.InstallAPIs()

	// Cancelled on shutdown so event streams end instead of holding Shutdown.
	baseCtx, cancel := context.WithCancel(context.Background())
	s.insecureServer = &http.Server{
		Addr:              s.InsecureServingInfo.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	s.insecureServer.RegisterOnShutdown(cancel)
}

// InstallAPIs install generic apis.
func (s *GenericAPIServer) InstallAPIs() {
	if s.healthz {
		s.GET("/healthz", func(c *gin.Context) {
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if s.enableProfiling {
		pprof.Register(s.Engine)
	}

	s.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})
}

// Setup do some setup work for gin engine.
func (s *GenericAPIServer) Setup() {
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debug("[Server] %-6s %-s --> %s (%d handlers)", httpMethod, absolutePath, handlerName, nuHandlers)
	}
}

// Run spawns the http server. It only returns when the port cannot be listened on initially
// or the server is closed.
func (s *GenericAPIServer) Run() error {
	logger.Info("[Server] start to listening the incoming requests on http address: %s", s.InsecureServingInfo.Address)
	if err := s.insecureServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("[Server] server on %s stopped", s.InsecureServingInfo.Address)
	return nil
}

// Close graceful shutdown the api server.
func (s *GenericAPIServer) Close() {
	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.insecureServer.Shutdown(ctx); err != nil {
		logger.Warn("[Server] shutdown secure server failed: %s", err.Error())
	}
}
