package assistant

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/movie-booking-assistant/internal/booking"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

// Message senders in the conversation log.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one entry of the conversation log.
type Message struct {
	At     time.Time `json:"at"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
}

// Session is the state of one conversation: who is talking, the
// booking draft, the conversation log and the suggestion mailbox.
// Every orchestrator call takes the session explicitly; a turn holds
// the session lock from classification to the logged reply.
type Session struct {
	ID string

	mu       sync.Mutex
	username string
	flow     *booking.Flow
	history  []Message

	// mailbox holds at most one advisory suggestion.  It is written by
	// the suggestion producer and read by the next idle reply.
	mailbox  chan string
	lastSeen atomic.Int64
}

// NewSession returns an idle session for username ("" means guest).
func NewSession(id, username string, maxTickets int) *Session {
	if username == "" {
		username = model.GuestUsername
	}
	s := &Session{
		ID:       id,
		username: username,
		flow:     booking.NewFlow(maxTickets),
		mailbox:  make(chan string, 1),
	}
	s.Touch(time.Now())
	return s
}

// Username returns the identity reservations are made under.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// claim binds the session to username and reports whether that is
// allowed.  A guest session may be taken over once, e.g. after login,
// keeping its draft; a session that belongs to a user only ever
// answers to that user.
func (s *Session) claim(username string) bool {
	if username == "" {
		username = model.GuestUsername
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case strings.EqualFold(s.username, username):
		return true
	case s.username == model.GuestUsername:
		s.username = username
		return true
	default:
		return false
	}
}

// Draft returns a copy of the booking draft.
func (s *Session) Draft() booking.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Draft()
}

// History returns a copy of the conversation log.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// Offer puts a suggestion in the mailbox, replacing one that has not
// been shown yet.  It never blocks and never touches the draft.
func (s *Session) Offer(suggestion string) {
	for {
		select {
		case s.mailbox <- suggestion:
			return
		default:
		}
		select {
		case <-s.mailbox:
		default:
		}
	}
}

// takeSuggestion empties the mailbox.
func (s *Session) takeSuggestion() (string, bool) {
	select {
	case v := <-s.mailbox:
		return v, true
	default:
		return "", false
	}
}

// Touch records activity at t.
func (s *Session) Touch(t time.Time) { s.lastSeen.Store(t.UnixNano()) }

// LastSeen is the time of the last activity.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// record appends to the log; the caller holds s.mu.
func (s *Session) record(at time.Time, sender, text string) {
	s.history = append(s.history, Message{At: at, Sender: sender, Text: text})
}
