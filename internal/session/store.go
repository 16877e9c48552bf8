package session

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"guestbook/internal/guestbook"
	"guestbook/internal/observability"
)

// Store keeps one guestbook.View per browser session. When limit is reached
// opening a new session evicts the least recently seen one.
type Store struct {
	newView func() *guestbook.View
	now     func() time.Time
	limit   int

	mu    sync.Mutex
	views map[string]*entry
}

type entry struct {
	view     *guestbook.View
	lastSeen time.Time
}

// NewStore builds a store creating views with newView and holding at most
// limit sessions. A limit of zero or less means no cap.
func NewStore(newView func() *guestbook.View, limit int) *Store {
	return &Store{
		newView: newView,
		now:     time.Now,
		limit:   limit,
		views:   make(map[string]*entry),
	}
}

// Open starts a fresh, unmounted view for id, discarding any previous one.
func (s *Store) Open(id string) *guestbook.View {
	view := s.newView()

	s.mu.Lock()
	if _, ok := s.views[id]; !ok && s.limit > 0 && len(s.views) >= s.limit {
		s.evictOldest()
	}
	s.views[id] = &entry{view: view, lastSeen: s.now()}
	n := len(s.views)
	s.mu.Unlock()

	observability.SetViewSessions(n)
	return view
}

// Get returns the live view for id.
func (s *Store) Get(id string) (*guestbook.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.views[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.view, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many went.
func (s *Store) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	cutoff := s.now().Add(-maxIdle)
	expired := lo.Keys(lo.PickBy(s.views, func(_ string, e *entry) bool {
		return e.lastSeen.Before(cutoff)
	}))
	for _, id := range expired {
		delete(s.views, id)
	}
	n := len(s.views)
	s.mu.Unlock()

	observability.SetViewSessions(n)
	return len(expired)
}

// evictOldest drops the least recently seen session. Callers hold mu.
func (s *Store) evictOldest() {
	oldest := lo.MinBy(lo.Entries(s.views), func(a, b lo.Entry[string, *entry]) bool {
		return a.Value.lastSeen.Before(b.Value.lastSeen)
	})
	delete(s.views, oldest.Key)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}
