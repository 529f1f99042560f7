// Package booking implements the reservation state machine: a single
// draft that moves from a chosen movie through date, time, ticket
// count and theater to a confirmation prompt.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/slot"
)

// Step is the position of the draft in the flow.
type Step int

const (
	Idle Step = iota
	AwaitingDate
	AwaitingTime
	AwaitingTickets
	AwaitingTheater
	AwaitingConfirmation
)

// TotalSteps is the number shown in progress lines ("step 3/6").
const TotalSteps = 6

func (s Step) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingDate:
		return "awaiting_date"
	case AwaitingTime:
		return "awaiting_time"
	case AwaitingTickets:
		return "awaiting_tickets"
	case AwaitingTheater:
		return "awaiting_theater"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Outcome tells the caller what Advance did with an utterance.
type Outcome int

const (
	// Advanced means a slot was filled and the step moved forward.
	Advanced Outcome = iota
	// Missed means the expected slot could not be extracted; nothing
	// changed.
	Missed
	// OutOfRange means a ticket count was found but is outside the
	// allowed bounds; nothing changed.
	OutOfRange
	// Confirm means the user accepted the summary.  The draft is left
	// in place until the caller stores the reservation and calls Reset.
	Confirm
	// Cancelled means the user rejected the summary; the draft is gone.
	Cancelled
	// Redisplay means the confirmation prompt should be shown again.
	Redisplay
	// Restarted means the user asked to start over; the draft is gone.
	Restarted
	// NotActive means there is no booking in progress.
	NotActive
)

var (
	// ErrNotConfirmable is returned by Reservation when the draft has not
	// reached the confirmation step.
	ErrNotConfirmable = errors.New("booking is not awaiting confirmation")
	// ErrTicketsOutOfRange is returned when a ticket count is outside
	// 1..MaxTickets.
	ErrTicketsOutOfRange = errors.New("ticket count out of range")
	// ErrIncomplete is returned by QuickFill when a field is missing.
	ErrIncomplete = errors.New("movie, date and time are required")
)

var (
	affirmative = []string{"confirm", "yes", "book it", "proceed"}
	negative    = []string{"cancel", "no", "stop"}
	restart     = []string{"restart", "start over"}
)

// Draft is the reservation under construction.
type Draft struct {
	Step        Step
	Movie       string
	Date        string
	Time        string
	Tickets     int
	Theater     string
	SeatClass   model.SeatClass
	QuickFilled bool
}

func newDraft() Draft {
	return Draft{Step: Idle, Tickets: 1, SeatClass: model.SeatStandard}
}

// Result is what Advance reports back.
type Result struct {
	Outcome Outcome
	Step    Step   // step after the call
	Value   string // the slot value that was filled, if any
}

// Flow owns the single draft of a session.  It is not safe for
// concurrent use; the owning session serialises access.
type Flow struct {
	maxTickets int
	draft      Draft
}

// NewFlow returns an idle flow.  maxTickets is the upper bound of a
// ticket count; values below 1 mean 10.
func NewFlow(maxTickets int) *Flow {
	if maxTickets < 1 {
		maxTickets = 10
	}
	return &Flow{maxTickets: maxTickets, draft: newDraft()}
}

// Draft returns a copy of the current draft.
func (f *Flow) Draft() Draft { return f.draft }

// Active reports whether a booking is in progress.
func (f *Flow) Active() bool { return f.draft.Step != Idle }

// MaxTickets is the configured upper bound.
func (f *Flow) MaxTickets() int { return f.maxTickets }

// Reset discards the draft.
func (f *Flow) Reset() { f.draft = newDraft() }

// Start begins a new booking for title, replacing any draft in
// progress.
func (f *Flow) Start(title string) {
	f.draft = newDraft()
	f.draft.Movie = title
	f.draft.Step = AwaitingDate
}

// SetSeatClass changes the seat tier without moving the step.
func (f *Flow) SetSeatClass(c model.SeatClass) {
	if c == model.SeatVIP || c == model.SeatStandard {
		f.draft.SeatClass = c
	}
}

// QuickFill builds a draft directly at the confirmation step from a
// structured form, skipping extraction.  An empty theater means the
// caller's default.
func (f *Flow) QuickFill(movie, date, tm string, tickets int, theater string) error {
	if strings.TrimSpace(movie) == "" || strings.TrimSpace(date) == "" || strings.TrimSpace(tm) == "" {
		return ErrIncomplete
	}
	if !f.ticketsInRange(tickets) {
		return ErrTicketsOutOfRange
	}
	f.draft = Draft{
		Step:        AwaitingConfirmation,
		Movie:       movie,
		Date:        date,
		Time:        tm,
		Tickets:     tickets,
		Theater:     theater,
		SeatClass:   model.SeatStandard,
		QuickFilled: true,
	}
	return nil
}

func (f *Flow) ticketsInRange(n int) bool { return n >= 1 && n <= f.maxTickets }

// Advance feeds one utterance to the current step.  theaters are the
// known theater names in catalog order.  A failed extraction never
// touches slots that are already filled.
func (f *Flow) Advance(text string, theaters []string) Result {
	if !f.Active() {
		return Result{Outcome: NotActive, Step: Idle}
	}
	normalized := normalize(text)
	if matchesAny(normalized, restart) {
		f.Reset()
		return Result{Outcome: Restarted, Step: Idle}
	}
	if c, ok := slot.SeatClass(text); ok {
		f.SetSeatClass(c)
	}

	d := &f.draft
	switch d.Step {
	case AwaitingDate:
		if v, ok := slot.Date(text); ok {
			d.Date = v
			d.Step = AwaitingTime
			return Result{Outcome: Advanced, Step: d.Step, Value: v}
		}
	case AwaitingTime:
		if v, ok := slot.Time(text); ok {
			d.Time = v
			d.Step = AwaitingTickets
			return Result{Outcome: Advanced, Step: d.Step, Value: v}
		}
	case AwaitingTickets:
		if n, ok := slot.Tickets(text); ok {
			if !f.ticketsInRange(n) {
				return Result{Outcome: OutOfRange, Step: d.Step}
			}
			d.Tickets = n
			d.Step = AwaitingTheater
			return Result{Outcome: Advanced, Step: d.Step, Value: fmt.Sprint(n)}
		}
	case AwaitingTheater:
		if v, ok := slot.Theater(text, theaters); ok {
			d.Theater = v
			d.Step = AwaitingConfirmation
			return Result{Outcome: Advanced, Step: d.Step, Value: v}
		}
	case AwaitingConfirmation:
		switch {
		case matchesAny(normalized, affirmative):
			return Result{Outcome: Confirm, Step: d.Step}
		case matchesAny(normalized, negative):
			f.Reset()
			return Result{Outcome: Cancelled, Step: Idle}
		default:
			return Result{Outcome: Redisplay, Step: d.Step}
		}
	}
	return Result{Outcome: Missed, Step: d.Step}
}

// Reservation snapshots a confirmable draft.  The ticket bounds are
// checked again here because a draft may have been built through
// QuickFill.  The draft itself is not cleared.
func (f *Flow) Reservation(id, username string, total float64, now time.Time) (model.Reservation, error) {
	d := f.draft
	if d.Step != AwaitingConfirmation {
		return model.Reservation{}, ErrNotConfirmable
	}
	if !f.ticketsInRange(d.Tickets) {
		return model.Reservation{}, ErrTicketsOutOfRange
	}
	if username == "" {
		username = model.GuestUsername
	}
	return model.Reservation{
		BookingID:   id,
		Username:    username,
		Movie:       d.Movie,
		Date:        d.Date,
		Time:        d.Time,
		Tickets:     d.Tickets,
		Theater:     d.Theater,
		SeatType:    d.SeatClass,
		TotalPrice:  total,
		BookingDate: now.Format(model.BookingDateLayout),
		Status:      model.StatusConfirmed,
	}, nil
}

// normalize lower-cases text, trims it and drops trailing punctuation,
// so "Yes!" and " confirm." count as answers.
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	return strings.TrimRight(s, ".!?, ")
}

// matchesAny reports whether s is exactly one of the answers.
// Confirmation answers must be the whole utterance: "no thanks, book it"
// is neither a yes nor a no.
func matchesAny(s string, answers []string) bool {
	for _, a := range answers {
		if s == a {
			return true
		}
	}
	return false
}
