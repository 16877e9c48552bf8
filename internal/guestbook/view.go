package guestbook

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"guestbook/internal/models"
)

// Phase is the lifecycle state of a View.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseFetching   Phase = "fetching"
	PhaseSubmitting Phase = "submitting"
)

// Draft is the unsaved form input for a new message.
type Draft struct {
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
}

// State is a point-in-time copy of a View.
type State struct {
	Messages   []Message `json:"messages"`
	Draft      Draft     `json:"draft"`
	Submitting bool      `json:"submitting"`
	Phase      Phase     `json:"phase"`
}

// Empty reports whether there is nothing to list.
func (s State) Empty() bool {
	return len(s.Messages) == 0
}

// View is the guestbook page view-model. It owns the message list, the draft
// and the submitting flag of one page session.
//
// The mutex guards state only; it is never held across a client call, so
// snapshots stay readable while a request is in flight.
type View struct {
	client MessageClient
	log    *slog.Logger

	mu         sync.Mutex
	mounted    bool
	messages   []Message
	draft      Draft
	submitting bool
	creating   bool
	fetching   int
}

// NewView builds an unmounted view with empty state.
func NewView(client MessageClient, log *slog.Logger) *View {
	if log == nil {
		log = slog.Default()
	}
	return &View{
		client:   client,
		log:      log,
		messages: []Message{},
	}
}

// Mount runs the initial fetch. Only the first call has any effect.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.mu.Unlock()

	v.ListMessages(ctx)
}

// ListMessages replaces the message list with the backend's. On failure the
// list is kept and the error is logged. Overlapping calls are allowed and the
// last one to complete wins.
func (v *View) ListMessages(ctx context.Context) {
	v.mu.Lock()
	v.fetching++
	v.mu.Unlock()

	msgs, err := v.client.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.fetching--
	if err != nil {
		v.log.Error("failed to fetch guestbook", "error", err)
		return
	}
	if msgs == nil {
		msgs = []Message{}
	}
	v.messages = msgs
}

// SetNickname updates the draft nickname.
func (v *View) SetNickname(nickname string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft.Nickname = nickname
}

// SetContent updates the draft content.
func (v *View) SetContent(content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft.Content = content
}

// SetDraft replaces both draft fields.
func (v *View) SetDraft(draft Draft) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = draft
}

// Submit sends the current draft and reports whether a message was created.
func (v *View) Submit(ctx context.Context) bool {
	v.mu.Lock()
	draft := v.draft
	v.mu.Unlock()

	return v.SubmitMessage(ctx, draft.Nickname, draft.Content)
}

// SubmitMessage creates a message and, on success, clears the draft and
// re-lists. Values are sent untrimmed. A field that is blank after trimming
// makes the call a no-op, as does a submission while another is running.
// The result is true only when the backend accepted the message.
func (v *View) SubmitMessage(ctx context.Context, nickname, content string) bool {
	if strings.TrimSpace(nickname) == "" || strings.TrimSpace(content) == "" {
		return false
	}

	v.mu.Lock()
	if v.submitting {
		v.mu.Unlock()
		v.log.Debug("submission ignored while another is in flight")
		return false
	}
	v.submitting = true
	v.creating = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.submitting = false
		v.creating = false
		v.mu.Unlock()
	}()

	err := v.client.Create(ctx, models.CreateMessageRequest{Nickname: nickname, Content: content})

	v.mu.Lock()
	v.creating = false
	if err != nil {
		v.mu.Unlock()
		v.log.Error("failed to create guestbook message", "error", err)
		return false
	}
	v.draft = Draft{}
	v.mu.Unlock()

	v.ListMessages(ctx)
	return true
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	msgs := make([]Message, len(v.messages))
	copy(msgs, v.messages)
	return State{
		Messages:   msgs,
		Draft:      v.draft,
		Submitting: v.submitting,
		Phase:      v.phase(),
	}
}

func (v *View) phase() Phase {
	switch {
	case v.creating:
		return PhaseSubmitting
	case v.fetching > 0:
		return PhaseFetching
	default:
		return PhaseIdle
	}
}
