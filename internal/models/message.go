package models

// Message is a guestbook entry as stored by the backend and listed by the client.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	Nickname  string    `db:"nickname" json:"nickname"`
	Content   string    `db:"content" json:"content"`
	CreatedAt Timestamp `db:"created_at" json:"createdAt"`
}

// CreateMessageRequest is the body of a create call.
type CreateMessageRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// MessageEvent is broadcasted through websockets.
type MessageEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}
