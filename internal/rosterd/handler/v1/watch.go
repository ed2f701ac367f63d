package v1

import (
	"io"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/internal/pkg/core"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/pkg/errorx"
	"github.com/kiosk404/roster/pkg/logger"
)

const watchBuffer = 16

// Watch handles GET /v1/agents/watch as a server-sent event stream: one
// snapshot event with the current collection, then one change event per
// applied mutation until the client goes away.
func (h *AgentHandler) Watch(c *gin.Context) {
	ctx := c.Request.Context()
	client := c.ClientIP()

	// Subscribe before listing so no change between the two is lost.
	events := make(chan entity.ChangeEvent, watchBuffer)
	cancel := h.svc.Subscribe(func(ev entity.ChangeEvent) {
		for {
			select {
			case events <- ev:
				return
			default:
			}
			// Full: drop the oldest. Every event carries the whole collection,
			// so a slow client only misses intermediate states.
			select {
			case old := <-events:
				logger.Warn("[Watch] client %s is slow, dropping %s event", client, old.Kind)
			default:
			}
		}
	})
	defer cancel()

	agents, err := h.svc.ListAgents(ctx)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAgentList, "list agents"), nil)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	var seq int
	c.Render(-1, sse.Event{Event: EventSnapshot, Id: strconv.Itoa(seq), Data: ListAgentsResponse{Data: agents}})
	c.Writer.Flush()
	logger.Debug("[Watch] client %s subscribed", client)

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			seq++
			c.Render(-1, sse.Event{Event: EventChange, Id: strconv.Itoa(seq), Data: ev})
			return true
		case <-ticker.C:
			c.Render(-1, sse.Event{Event: "ping", Data: time.Now().Unix()})
			return true
		case <-ctx.Done():
			return false
		}
	})
	logger.Debug("[Watch] client %s unsubscribed", client)
}
