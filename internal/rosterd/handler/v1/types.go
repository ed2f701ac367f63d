package v1

import (
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
)

// ListAgentsResponse is returned by GET /v1/agents and PUT /v1/agents, and
// is the payload of the watch stream's snapshot event.
type ListAgentsResponse struct {
	Data []*entity.Agent `json:"data"`
}

// DeleteAgentResponse is returned by DELETE /v1/agents/:id.
type DeleteAgentResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// Watch stream event names.
const (
	EventSnapshot = "snapshot"
	EventChange   = "change"
)
