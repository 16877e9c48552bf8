package guestbook_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guestbook/internal/guestbook"
)

func TestMessageKey(t *testing.T) {
	cases := map[string]string{
		`1`:          "1",
		`"a1b2"`:     "a1b2",
		`1.5`:        "1.5",
		`"<b>x</b>"`: "<b>x</b>",
	}
	for raw, want := range cases {
		assert.Equal(t, want, guestbook.Message{ID: json.RawMessage(raw)}.Key(), raw)
	}
}

func TestMessageCreated(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{`"2024-01-01T00:00:00Z"`, true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-01-01T09:00:00+09:00"`, true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024-01-02T09:30:00.123"`, true, time.Date(2024, 1, 2, 9, 30, 0, 123000000, time.Local)},
		{`"2024-01-02 09:30:00"`, true, time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)},
		{`"2024-01-02"`, true, time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)},
		{`1704067200000`, true, time.UnixMilli(1704067200000)},
		{`"soon"`, false, time.Time{}},
		{`null`, false, time.Time{}},
		{``, false, time.Time{}},
	}
	for _, tc := range cases {
		got, ok := guestbook.Message{CreatedAt: json.RawMessage(tc.raw)}.Created()
		assert.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			assert.True(t, tc.want.Equal(got), "%s: got %v", tc.raw, got)
		}
	}
}
