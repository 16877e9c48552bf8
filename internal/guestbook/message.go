package guestbook

import (
	"bytes"
	"encoding/json"
	"time"
)

// createdLayouts are tried in order when reading createdAt for display.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Message is a guestbook entry as listed by the backend. The id and createdAt
// values are kept exactly as received.
type Message struct {
	ID        json.RawMessage `json:"id"`
	Nickname  string          `json:"nickname"`
	Content   string          `json:"content"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

// Key renders the id as text, unquoting string ids.
func (m Message) Key() string {
	var s string
	if err := json.Unmarshal(m.ID, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(m.ID))
}

// Created reads createdAt as a date string or epoch milliseconds. Zone-less
// strings are local time. ok is false when the value cannot be read.
func (m Message) Created() (t time.Time, ok bool) {
	var s string
	if err := json.Unmarshal(m.CreatedAt, &s); err == nil {
		for _, layout := range createdLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	var millis float64
	if err := json.Unmarshal(m.CreatedAt, &millis); err == nil {
		return time.UnixMilli(int64(millis)), true
	}
	return time.Time{}, false
}
