package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/CageChen/dirview/internal/logging"
	"github.com/CageChen/dirview/internal/metrics"
	"github.com/CageChen/dirview/internal/watcher"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The admin listener is not exposed publicly
	},
}

// EventMessage is one message pushed to change-feed clients.
type EventMessage struct {
	Type    string      `json:"type"`
	Payload ChangeEvent `json:"payload"`
}

// ChangeEvent describes a filesystem change under the root.
type ChangeEvent struct {
	Event string `json:"event"`
	Path  string `json:"path"`
}

// EventsHandler streams watcher events to websocket clients.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	metrics *metrics.Metrics
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(m *metrics.Metrics) *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
		metrics: m,
	}
}

// HandleWS upgrades the connection and keeps it registered until the client goes away.
func (h *EventsHandler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.WithContext(c.Request.Context()).Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() {
		h.removeClient(conn)
		_ = conn.Close()
	}()

	h.addClient(conn)

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// OnFileChange is registered as a watcher callback.
func (h *EventsHandler) OnFileChange(event watcher.Event) {
	h.metrics.RecordWatchEvent(event.Type.String())
	h.broadcast(EventMessage{
		Type: "change",
		Payload: ChangeEvent{
			Event: event.Type.String(),
			Path:  event.Path,
		},
	})
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *EventsHandler) addClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	h.metrics.SetEventClients(len(h.clients))
}

func (h *EventsHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	h.metrics.SetEventClients(len(h.clients))
}

func (h *EventsHandler) broadcast(msg EventMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.removeClient(client)
		}
	}
}
