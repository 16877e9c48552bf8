package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"guestbook/internal/models"
)

// MessageRepository defines persistence for guestbook messages.
type MessageRepository interface {
	ListMessages(ctx context.Context) ([]models.Message, error)
	CreateMessage(ctx context.Context, nickname string, content string) (models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// ListMessages returns every message in insertion order.
func (r *MessageRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	msgs := []models.Message{}
	err := r.db.SelectContext(ctx, &msgs, r.db.Rebind(`SELECT id, nickname, content, created_at FROM guestbook ORDER BY id ASC`))
	return msgs, err
}

// CreateMessage stores a message and returns it with its assigned id and timestamp.
func (r *MessageRepo) CreateMessage(ctx context.Context, nickname string, content string) (models.Message, error) {
	var msg models.Message
	createdAt := models.NewTimestamp(time.Now().UTC())
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO guestbook (nickname, content, created_at) VALUES (?, ?, ?) RETURNING id, nickname, content, created_at`),
		nickname, content, createdAt).
		StructScan(&msg)
	return msg, err
}
