package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/movie-booking-assistant/internal/booking"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

// ErrUnknownMovie is returned by QuickBook for a title that is not in
// the catalog.
var ErrUnknownMovie = errors.New("movie not in catalog")

// QuickBookRequest is the structured booking form.
type QuickBookRequest struct {
	Movie     string          `json:"movie"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Tickets   int             `json:"tickets"`
	SeatClass model.SeatClass `json:"seat_type,omitempty"`
	Theater   string          `json:"theater,omitempty"`
}

// QuickBook fills the draft straight from the form and leaves it at the
// confirmation step.  The returned text is the booking summary; the
// user confirms through Respond as usual.
func (a *Assistant) QuickBook(ctx context.Context, s *Session, req QuickBookRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := a.catalog.Catalog(ctx)
	title := strings.TrimSpace(req.Movie)
	if title != "" {
		m, ok := findMovie(cat, title)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownMovie, title)
		}
		title = m.Title
	}
	theater := a.defaultTheater
	for _, t := range cat.Theaters {
		if req.Theater != "" && strings.EqualFold(t.Name, strings.TrimSpace(req.Theater)) {
			theater = t.Name
		}
	}
	if err := s.flow.QuickFill(title, strings.TrimSpace(req.Date), strings.TrimSpace(req.Time), req.Tickets, theater); err != nil {
		return "", err
	}
	if req.SeatClass != "" {
		s.flow.SetSeatClass(normalizeSeatClass(req.SeatClass))
	}

	now := a.now()
	s.Touch(now)
	reply := "⚡ **QUICK BOOKING**\n\n" + a.summary(s.flow.Draft()) + "\n\n" + confirmPrompt
	s.record(now, SenderBot, reply)
	return reply, nil
}

func normalizeSeatClass(c model.SeatClass) model.SeatClass {
	if strings.EqualFold(string(c), string(model.SeatVIP)) {
		return model.SeatVIP
	}
	return model.SeatStandard
}

// AutoBook proposes the most popular movie for tomorrow evening at the
// default theater.  Nothing is booked; the user is told what to say.
func (a *Assistant) AutoBook(ctx context.Context, s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat := a.catalog.Catalog(ctx)
	top := rankMovies(cat.Movies, "")
	var reply string
	if len(top) == 0 {
		reply = "There are no movies available for auto booking right now."
	} else {
		m := top[0]
		reply = fmt.Sprintf("🤖 **AUTO BOOKING SUGGESTION**\n\n"+
			"🎬 Movie: %s\n"+
			"📅 Date: tomorrow\n"+
			"🕐 Time: 6:30 PM\n"+
			"🏢 Theater: %s\n"+
			"🎫 Tickets: 2\n"+
			"💰 Total: $%.2f\n\n"+
			"Say \"Book %s\" to start this booking.",
			m.Title, a.defaultTheater, a.pricing.Price(2, model.SeatStandard), m.Title)
	}
	now := a.now()
	s.Touch(now)
	s.record(now, SenderBot, reply)
	return reply
}

// Status describes the progress of the current booking.
func (a *Assistant) Status(s *Session) string {
	d := s.Draft()
	if d.Step == booking.Idle {
		return "🟢 Ready to help"
	}
	parts := []string{fmt.Sprintf("📝 Booking in progress (step %d/%d)", int(d.Step), booking.TotalSteps)}
	if d.Movie != "" {
		parts = append(parts, "🎬 "+d.Movie)
	}
	if d.Date != "" {
		parts = append(parts, "📅 "+d.Date)
	}
	if d.Time != "" {
		parts = append(parts, "🕐 "+d.Time)
	}
	if d.Step > booking.AwaitingTickets {
		parts = append(parts, fmt.Sprintf("🎫 %d", d.Tickets))
	}
	if d.Theater != "" {
		parts = append(parts, "🏢 "+d.Theater)
	}
	return strings.Join(parts, " | ")
}
