package rosterd

import (
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/rosterd/handler/middleware"
	v1 "github.com/kiosk404/roster/internal/rosterd/handler/v1"
	"github.com/kiosk404/roster/internal/rosterd/options"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	agentService   service.AgentService
	gatewayOptions *options.GatewayOptions
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(middleware.RequestID())
	g.Use(middleware.Logger())

	var origins []string
	if deps.gatewayOptions != nil {
		origins = deps.gatewayOptions.AllowOrigins
	}
	g.Use(middleware.CORS(origins))
}

func installController(g *gin.Engine, deps *routerDeps) {
	var keepAlive = v1.DefaultKeepAlive
	if deps.gatewayOptions != nil {
		keepAlive = deps.gatewayOptions.WatchKeepAlive
	}

	// Handlers.
	agentHandler := v1.NewAgentHandler(deps.agentService, keepAlive)

	// --- /v1 route group ---
	apiV1 := g.Group("/v1")
	{
		// Agent records.
		apiV1.GET("/agents", agentHandler.List)
		apiV1.POST("/agents", agentHandler.Create)
		apiV1.PUT("/agents", agentHandler.Replace)
		apiV1.GET("/agents/watch", agentHandler.Watch)
		apiV1.GET("/agents/:id", agentHandler.Get)
		apiV1.PUT("/agents/:id", agentHandler.Update)
		apiV1.DELETE("/agents/:id", agentHandler.Delete)
	}
}
