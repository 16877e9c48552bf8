package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// localDateTime is the zone-less shape produced by backends that serialize
// local date-times. Such values are read as UTC.
const localDateTime = "2006-01-02T15:04:05"

// Timestamp is a creation time that tolerates both RFC 3339 and zone-less
// date-time encodings.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp reads an RFC 3339 or zone-less local date-time string.
func ParseTimestamp(value string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return Timestamp{Time: t}, nil
	}
	t, err := time.ParseInLocation(localDateTime, value, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return Timestamp{Time: t}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	parsed, err := ParseTimestamp(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
	case time.Time:
		*t = Timestamp{Time: v}
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}
