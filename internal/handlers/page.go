package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guestbook/internal/guestbook"
	"guestbook/internal/session"
)

// SessionCookie names the browser session cookie.
const SessionCookie = "guestbook_session"

const (
	pageTitle       = "Guestbook"
	pageDescription = "Simple guestbook application"
)

// PageHandler renders the guestbook page and drives one View per session.
type PageHandler struct {
	sessions *session.Store
	lang     string
}

// NewPageHandler builds a PageHandler rendering documents in lang.
func NewPageHandler(sessions *session.Store, lang string) *PageHandler {
	return &PageHandler{sessions: sessions, lang: lang}
}

type pageData struct {
	Lang        string
	Title       string
	Description string
	State       guestbook.State
}

// Show mounts a fresh view for the session and renders it. A page load is a
// new page session, so any earlier view is discarded.
func (h *PageHandler) Show(c *gin.Context) {
	id := h.sessionID(c)
	view := h.sessions.Open(id)
	view.Mount(c.Request.Context())
	h.render(c, view)
}

// Submit copies the posted form into the draft and submits it. A created
// message redirects back to the page so a reload cannot post it twice; a no-op
// or failed submit renders the page with the draft kept.
func (h *PageHandler) Submit(c *gin.Context) {
	view, ok := h.currentView(c)
	if !ok {
		view = h.sessions.Open(h.sessionID(c))
		view.Mount(c.Request.Context())
	}

	view.SetDraft(guestbook.Draft{
		Nickname: c.PostForm("nickname"),
		Content:  c.PostForm("content"),
	})
	if view.Submit(c.Request.Context()) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.render(c, view)
}

// State returns the session's view state as JSON.
func (h *PageHandler) State(c *gin.Context) {
	view, ok := h.currentView(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no page session"})
		return
	}
	c.JSON(http.StatusOK, view.Snapshot())
}

func (h *PageHandler) render(c *gin.Context, view *guestbook.View) {
	c.HTML(http.StatusOK, "page.html", pageData{
		Lang:        h.lang,
		Title:       pageTitle,
		Description: pageDescription,
		State:       view.Snapshot(),
	})
}

func (h *PageHandler) currentView(c *gin.Context) (*guestbook.View, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return nil, false
	}
	return h.sessions.Get(id)
}

// sessionID returns the session cookie value when it names a live session,
// and issues a new one otherwise.
func (h *PageHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		if _, ok := h.sessions.Get(id); ok {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	return id
}
