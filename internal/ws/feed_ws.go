package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"guestbook/internal/observability"
)

// FeedHandler serves the live guestbook feed.
type FeedHandler struct {
	hub *Hub
}

// NewFeedHandler constructs a FeedHandler.
func NewFeedHandler(hub *Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and registers the subscriber until it goes away.
func (h *FeedHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("guestbook-api/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      uuid.NewString(),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     observability.TraceIDFromContext(ctx),
		ConnectedAt: time.Now(),
	}
	h.hub.AddClient(conn, info)
	observability.IncWSActive(feedKind)
	publishWSEvent(ctx, "ws_connect", info, "")

	// Subscribers only listen; reading detects the close.
	eventCtx := context.WithoutCancel(ctx)
	go func() {
		var closeReason string
		defer func() {
			h.hub.RemoveClient(conn)
			observability.DecWSActive(feedKind)
			publishWSEvent(eventCtx, "ws_disconnect", info, closeReason)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					publishWSEvent(eventCtx, "ws_error", info, closeReason)
				}
				return
			}
		}
	}()
}
