package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type LiveHandler struct {
	hub *ws.Hub
}

func NewLiveHandler(hub *ws.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Live godoc
// @Summary      Server-sent event stream of game snapshots
// @Tags         game
// @Produce      text/event-stream
// @Router       /api/live [get]
func (h *LiveHandler) Live(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	sub := h.hub.Subscribe(playerID(c))
	defer h.hub.Unsubscribe(sub)

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case data, ok := <-sub.Messages():
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

// LiveWebSocket streams the same payloads over a websocket for clients that
// cannot hold an SSE connection open.
func (h *LiveHandler) LiveWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade error: %v", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(playerID(c))
	defer h.hub.Unsubscribe(sub)

	// Read pump: the client never sends anything meaningful, but the read
	// unblocks with an error the moment the peer goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case data, ok := <-sub.Messages():
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
