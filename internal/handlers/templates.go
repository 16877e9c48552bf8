package handlers

import (
	"embed"
	"html/template"
	"time"

	"guestbook/internal/guestbook"
)

//go:embed templates/*.html
var templateFS embed.FS

const displayLayout = "2006. 1. 2. 15:04:05"

// LoadTemplates parses the page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"rfc3339": func(m guestbook.Message) string {
			t, ok := m.Created()
			if !ok {
				return ""
			}
			return t.Format(time.RFC3339)
		},
		// Unreadable dates render as an empty label.
		"displayTime": func(m guestbook.Message) string {
			t, ok := m.Created()
			if !ok {
				return ""
			}
			return t.Local().Format(displayLayout)
		},
	}).ParseFS(templateFS, "templates/*.html")
}
