package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type eventsHandler struct {
	services *portssvc.ServiceContainer
}

func newEventsHandler(services *portssvc.ServiceContainer) *eventsHandler {
	return &eventsHandler{services: services}
}

// keepaliveInterval keeps idle SSE connections from being reaped by proxies.
const keepaliveInterval = 30 * time.Second

// StreamEvents godoc
// @Summary Subscribe to load change events
// @Description Server-sent event stream of table change notifications; clients reload affected data on receipt
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/events [get]
func (h *eventsHandler) StreamEvents(c *gin.Context) {
	if _, ok := currentProfile(c, h.services); !ok {
		return
	}

	events, cancel := h.services.ChangeFeed.Subscribe(c.Request.Context())
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", event)
			return true
		case <-keepalive.C:
			c.SSEvent("keepalive", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
