package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry tracks live sessions by id so that several conversations
// can run side by side, each with its own draft.
type Registry struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	maxTickets int
	ttl        time.Duration
}

// NewRegistry returns an empty registry.  Sessions idle for longer than
// ttl are dropped by Sweep; ttl <= 0 keeps them forever.
func NewRegistry(maxTickets int, ttl time.Duration) *Registry {
	return &Registry{sessions: make(map[string]*Session), maxTickets: maxTickets, ttl: ttl}
}

// Get returns the session with the given id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Create starts a new session for username under a fresh id.
func (r *Registry) Create(username string) *Session {
	s := NewSession(uuid.NewString(), username, r.maxTickets)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Resolve returns the session with the given id, or a new one when the
// id is empty, unknown or belongs to another user.  created reports
// which case happened.
func (r *Registry) Resolve(id, username string) (s *Session, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok && s.claim(username) {
			return s, false
		}
	}
	return r.Create(username), true
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Each calls fn for every live session.  fn must not call back into
// the registry.
func (r *Registry) Each(fn func(*Session)) {
	r.mu.Lock()
	list := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	r.mu.Unlock()
	for _, s := range list {
		fn(s)
	}
}

// Sweep drops sessions idle since before now-ttl and returns how many
// were removed.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
