package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"guestbook/internal/models"
	"guestbook/internal/observability"
)

const (
	feedKind       = "guestbook"
	feedRoutingKey = "ws_events.guestbook"
)

// Hub maintains the live guestbook feed subscribers.
type Hub struct {
	clients map[*websocket.Conn]ConnInfo
	mu      sync.RWMutex
	writeMu sync.Mutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]ConnInfo)}
}

// AddClient registers a websocket connection.
func (h *Hub) AddClient(conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = info
}

// RemoveClient removes a websocket connection.
func (h *Hub) RemoveClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Count returns the number of subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastMessage sends a newly created message to every subscriber.
// Subscribers that cannot be written to are dropped.
func (h *Hub) BroadcastMessage(msg models.Message) {
	payload, err := json.Marshal(models.MessageEvent{Type: "message", Message: &msg})
	if err != nil {
		slog.Error("websocket encode error", "error", err)
		return
	}

	h.mu.RLock()
	conns := make(map[*websocket.Conn]ConnInfo, len(h.clients))
	for conn, info := range h.clients {
		conns[conn] = info
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for conn, info := range conns {
		if conn == nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Warn("websocket write error", "conn_id", info.ConnID, "error", err)
			conn.Close()
			h.RemoveClient(conn)
			publishWSEvent(context.Background(), "ws_error", info, err.Error())
		}
	}
}

func publishWSEvent(ctx context.Context, event string, info ConnInfo, reason string) {
	var durationMs int64
	if event != "ws_connect" {
		durationMs = time.Since(info.ConnectedAt).Milliseconds()
	}

	observability.IncWSEvent(feedKind, event)
	_ = observability.PublishEvent(ctx, feedRoutingKey, observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: map[string]interface{}{
			"ws": map[string]interface{}{
				"kind":        feedKind,
				"event":       event,
				"conn_id":     info.ConnID,
				"duration_ms": durationMs,
				"reason":      reason,
			},
			"identity": map[string]interface{}{
				"ip": info.IP,
			},
		},
	}, observability.BuildHeaders(info.RequestID, info.TraceID))
}
