package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/subscription"
)

type EventsHandler struct {
	hub *subscription.Hub
}

func NewEventsHandler(hub *subscription.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Stream is the push channel of the reactive query model: the client holds
// one SSE connection, names the topics of the queries it has open, and
// re-fetches whenever an invalidation event for one of them arrives.
// Without topics the stream carries every invalidation.
func (h *EventsHandler) Stream(c *gin.Context) {
	var topics []string
	if raw := c.Query("topics"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				topics = append(topics, t)
			}
		}
	}

	sub := h.hub.Subscribe(topics...)
	defer h.hub.Unsubscribe(sub)

	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.C():
			if !ok {
				return false
			}
			c.SSEvent("invalidate", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
