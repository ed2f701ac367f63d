package v1

import (
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/pkg/core"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/service"
	"github.com/kiosk404/roster/pkg/errorx"
)

// DefaultKeepAlive is how often an idle watch stream sends a ping event.
const DefaultKeepAlive = 15 * time.Second

// AgentHandler handles Agent REST API endpoints.
type AgentHandler struct {
	svc       service.AgentService
	keepAlive time.Duration
}

// NewAgentHandler creates a new AgentHandler. A non-positive keepAlive uses
// DefaultKeepAlive.
func NewAgentHandler(svc service.AgentService, keepAlive time.Duration) *AgentHandler {
	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	return &AgentHandler{svc: svc, keepAlive: keepAlive}
}

// List handles GET /v1/agents.
func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.svc.ListAgents(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAgentList, "list agents"), nil)
		return
	}
	core.WriteResponse(c, nil, ListAgentsResponse{Data: agents})
}

// Get handles GET /v1/agents/:id.
func (h *AgentHandler) Get(c *gin.Context) {
	id, ok := agentID(c)
	if !ok {
		return
	}
	agent, err := h.svc.GetAgent(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, ErrAgentNotFound, "agent %d not found", id)
		return
	}
	core.WriteResponse(c, nil, agent)
}

// Create handles POST /v1/agents.
func (h *AgentHandler) Create(c *gin.Context) {
	var req entity.AgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind agent request"), nil)
		return
	}

	agent, err := h.svc.CreateAgent(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, ErrAgentCreate, "create agent")
		return
	}
	core.WriteResponse(c, nil, agent)
}

// Update handles PUT /v1/agents/:id.
func (h *AgentHandler) Update(c *gin.Context) {
	id, ok := agentID(c)
	if !ok {
		return
	}
	var req entity.AgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind agent request"), nil)
		return
	}

	agent, err := h.svc.UpdateAgent(c.Request.Context(), id, &req)
	if err != nil {
		writeServiceError(c, err, ErrAgentUpdate, "update agent %d", id)
		return
	}
	core.WriteResponse(c, nil, agent)
}

// Delete handles DELETE /v1/agents/:id.
func (h *AgentHandler) Delete(c *gin.Context) {
	id, ok := agentID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteAgent(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, ErrAgentDelete, "delete agent %d", id)
		return
	}
	core.WriteResponse(c, nil, DeleteAgentResponse{ID: id, Deleted: true})
}

// Replace handles PUT /v1/agents. The body is a JSON array of agents, the
// same layout the store persists and `rosterctl export` writes.
func (h *AgentHandler) Replace(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "read request body"), nil)
		return
	}
	agents, err := entity.DecodeSnapshot(body)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind agents"), nil)
		return
	}

	ctx := c.Request.Context()
	if err := h.svc.ReplaceAgents(ctx, agents); err != nil {
		writeServiceError(c, err, ErrAgentReplace, "replace agents")
		return
	}
	stored, err := h.svc.ListAgents(ctx)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAgentList, "list agents"), nil)
		return
	}
	core.WriteResponse(c, nil, ListAgentsResponse{Data: stored})
}

func agentID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrInvalidID, "parse agent id %q", raw), nil)
		return 0, false
	}
	return id, true
}
