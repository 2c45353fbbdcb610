package handler

import (
	"io"
	"strings"
	"time"

	"github.com/fagundes/debt-ledger/internal/domain/entity"
	"github.com/fagundes/debt-ledger/pkg/events"
	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

// EventsHandler streams ledger events to the signed-in shell
type EventsHandler struct {
	bus *events.Bus[entity.LedgerEvent]
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(bus *events.Bus[entity.LedgerEvent]) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// Stream sends events as server-sent events until the client goes away.
// Action events are only delivered to the session that owns the slot.
func (h *EventsHandler) Stream(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		return
	}
	sessionID := session.ID.String()

	ch, unsubscribe := h.bus.Subscribe()
	defer unsubscribe()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			if strings.HasPrefix(ev.Type, "action.") && ev.SessionID != sessionID {
				return true
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
