package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"guestbook/internal/models"
	"guestbook/internal/repositories"
	"guestbook/internal/telemetry"
	"guestbook/internal/ws"
)

// GuestbookHandler serves the guestbook REST resource.
type GuestbookHandler struct {
	messageRepo repositories.MessageRepository
	hub         *ws.Hub
	audit       *telemetry.AuditEmitter
}

// NewGuestbookHandler builds a GuestbookHandler. hub and audit may be nil.
func NewGuestbookHandler(messageRepo repositories.MessageRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *GuestbookHandler {
	return &GuestbookHandler{
		messageRepo: messageRepo,
		hub:         hub,
		audit:       audit,
	}
}

// ListMessages returns every message as a bare JSON array, oldest first.
func (h *GuestbookHandler) ListMessages(c *gin.Context) {
	msgs, err := h.messageRepo.ListMessages(c.Request.Context())
	if err != nil {
		slog.Error("list guestbook failed", "request_id", requestIDFromContext(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	c.JSON(http.StatusOK, msgs)
}

// CreateMessage stores a message, announces it and returns it.
func (h *GuestbookHandler) CreateMessage(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := requestIDFromContext(c)
	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), req.Nickname, req.Content)
	if err != nil {
		slog.Error("create guestbook message failed", "request_id", requestID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	if h.hub != nil {
		h.hub.BroadcastMessage(msg)
	}
	h.audit.MessageCreated(c.Request.Context(), msg, requestID)

	c.JSON(http.StatusCreated, msg)
}
