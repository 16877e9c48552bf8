package telemetry

import (
	"context"
	"log/slog"
	"time"

	"guestbook/internal/models"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

type AuditEmitter struct {
	publisher   Publisher
	routingKey  string
	service     string
	environment string
}

type AuditEnvelope struct {
	SchemaVersion int          `json:"schema_version"`
	EventType     string       `json:"event_type"`
	OccurredAt    string       `json:"occurred_at"`
	Service       string       `json:"service"`
	Environment   string       `json:"environment"`
	RequestID     string       `json:"request_id"`
	Payload       AuditPayload `json:"payload"`
}

type AuditPayload struct {
	Level     string          `json:"level"`
	Text      string          `json:"text"`
	MessageID int64           `json:"message_id,omitempty"`
	Message   *models.Message `json:"message,omitempty"`
}

func NewAuditEmitter(publisher Publisher, routingKey, service, environment string) *AuditEmitter {
	return &AuditEmitter{
		publisher:   publisher,
		routingKey:  routingKey,
		service:     service,
		environment: environment,
	}
}

// Emit publishes a free-form audit line.
func (e *AuditEmitter) Emit(ctx context.Context, level, text, requestID string) {
	e.emit(ctx, "audit_log", requestID, AuditPayload{Level: level, Text: text})
}

// MessageCreated records a stored guestbook message.
func (e *AuditEmitter) MessageCreated(ctx context.Context, msg models.Message, requestID string) {
	e.emit(ctx, "guestbook_message_created", requestID, AuditPayload{
		Level:     "INFO",
		Text:      "guestbook message created",
		MessageID: msg.ID,
		Message:   &msg,
	})
}

func (e *AuditEmitter) emit(ctx context.Context, eventType, requestID string, payload AuditPayload) {
	if e == nil || e.publisher == nil {
		return
	}

	slog.Debug("audit emit", "event_type", eventType, "level", payload.Level, "request_id", requestID, "text", payload.Text)
	envelope := AuditEnvelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, e.routingKey, envelope); err != nil {
		slog.Error("audit publish failed", "event_type", eventType, "error", err)
	}
}
