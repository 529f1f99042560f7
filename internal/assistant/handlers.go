package assistant

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/booking"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/pricing"
	"github.com/iliyamo/movie-booking-assistant/internal/repository"
	"github.com/iliyamo/movie-booking-assistant/internal/slot"
)

const (
	fallbackReply = "I'm not sure I understood. I can help you:\n" +
		"• Book movie tickets\n" +
		"• Show available movies\n" +
		"• View or cancel bookings\n" +
		"• Check prices\n" +
		"• Get recommendations\n\n" +
		"What would you like to do?"

	capabilities = "I can help you:\n" +
		"• 🎫 Book movie tickets\n" +
		"• 📽️ Show what's playing\n" +
		"• 📋 View or cancel your bookings\n" +
		"• 💰 Check ticket prices\n" +
		"• ⭐ Recommend movies\n\n" +
		"What would you like to do today?"

	helpReply = "🤖 **HOW I CAN HELP**\n\n" +
		"**Booking:** \"Book tickets for Cosmic Dreams\"\n" +
		"**Movies:** \"What movies are showing?\"\n" +
		"**Bookings:** \"View my bookings\"\n" +
		"**Cancel:** \"Cancel booking BK12345\"\n" +
		"**Prices:** \"What are the prices?\"\n" +
		"**Recommendations:** \"What do you recommend?\"\n\n" +
		"While booking you can say \"VIP\" to upgrade your seats or \"start over\" to begin again."

	cancelledDraftReply = "Booking cancelled. Let me know if you'd like to book another movie! 😊"
	restartedReply      = "No problem, let's start over. 🎬 Which movie would you like to watch?"
	confirmPrompt       = "**Type 'confirm' to book or 'cancel' to start over.**"
)

var thanksReplies = []string{
	"You're welcome! Enjoy your movie! 🍿",
	"Happy to help! Have a great time at the cinema! 🎬",
	"My pleasure! Let me know if you need anything else. 😊",
}

func (a *Assistant) greeting(context.Context, *Session, string) string {
	return "Hello again! 👋 How can I assist you with your movie plans?"
}

func (a *Assistant) help(context.Context, *Session, string) string { return helpReply }

func (a *Assistant) thanks(context.Context, *Session, string) string {
	return thanksReplies[rand.IntN(len(thanksReplies))]
}

func (a *Assistant) bookRequest(ctx context.Context, s *Session, text string) string {
	cat := a.catalog.Catalog(ctx)
	title, ok := slot.Movie(text, cat.MovieTitles())
	if !ok {
		// "2 tickets" or "book it" belong to the draft in progress.
		if s.flow.Active() {
			return a.continueFlow(ctx, s, text)
		}
		var b strings.Builder
		b.WriteString("I'd love to help you book tickets! 🎫 Which movie would you like to watch?\n\n")
		for _, t := range cat.MovieTitles() {
			b.WriteString("• " + t + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	s.flow.Start(title)
	if c, ok := slot.SeatClass(text); ok {
		s.flow.SetSeatClass(c)
	}
	m, _ := findMovie(cat, title)

	var b strings.Builder
	fmt.Fprintf(&b, "Excellent choice! 🎬 **%s**\n", m.Title)
	if m.Genre != "" {
		fmt.Fprintf(&b, "Genre: %s | Duration: %s | Rating: %s\n", m.Genre, m.Duration, m.Rating)
	}
	if m.Score > 0 {
		fmt.Fprintf(&b, "⭐ IMDb: %.1f/10\n", m.Score)
	}
	if m.Description != "" {
		b.WriteString(m.Description + "\n")
	}
	b.WriteString("\n**When would you like to watch it?** (today, tomorrow, this weekend or a weekday)")
	return b.String()
}

func (a *Assistant) showCatalog(ctx context.Context, _ *Session, _ string) string {
	cat := a.catalog.Catalog(ctx)
	var b strings.Builder
	b.WriteString("🎬 **NOW SHOWING**\n")
	for _, m := range cat.Movies {
		fmt.Fprintf(&b, "\n**%s**\n", m.Title)
		fmt.Fprintf(&b, "Genre: %s | Rating: %s | Duration: %s\n", m.Genre, m.Rating, m.Duration)
		if m.Score > 0 {
			fmt.Fprintf(&b, "⭐ IMDb: %.1f/10\n", m.Score)
		}
		if m.Description != "" {
			b.WriteString(m.Description + "\n")
		}
		if times := cat.ShowtimesFor(m); len(times) > 0 {
			if len(times) > 3 {
				times = times[:3]
			}
			b.WriteString("Showtimes: " + strings.Join(times, ", ") + "\n")
		}
	}
	if len(cat.Theaters) > 0 {
		b.WriteString("\n🏢 **THEATERS**\n")
		for _, t := range cat.Theaters {
			b.WriteString(theaterLine(t) + "\n")
		}
	}
	b.WriteString("\nWhich movie would you like to book?")
	return b.String()
}

func (a *Assistant) viewReservations(ctx context.Context, s *Session, _ string) string {
	list, err := a.bookings.ListByUser(ctx, s.username)
	if err != nil {
		a.log.Error("list reservations", zap.String("user", s.username), zap.Error(err))
		return "❌ I couldn't load your bookings right now. Please try again later."
	}
	if len(list) == 0 {
		return "You don't have any bookings yet. Would you like to book a movie? 🎬"
	}
	if len(list) > 5 {
		list = list[len(list)-5:]
	}
	var b strings.Builder
	b.WriteString("📋 **YOUR BOOKINGS**\n")
	for i, r := range list {
		fmt.Fprintf(&b, "\n**Booking #%d**\n", i+1)
		fmt.Fprintf(&b, "ID: %s\n", r.BookingID)
		fmt.Fprintf(&b, "Movie: %s\n", r.Movie)
		fmt.Fprintf(&b, "Date: %s at %s\n", r.Date, r.Time)
		fmt.Fprintf(&b, "Theater: %s\n", r.Theater)
		fmt.Fprintf(&b, "Tickets: %d (%s)\n", r.Tickets, r.SeatType)
		fmt.Fprintf(&b, "Total: $%.2f\n", r.TotalPrice)
		fmt.Fprintf(&b, "Status: %s\n", r.Status)
		b.WriteString("------------------------------\n")
	}
	b.WriteString("\nTo cancel a booking, say: 'Cancel booking [Booking ID]'")
	return b.String()
}

func (a *Assistant) cancelReservation(ctx context.Context, s *Session, text string) string {
	id, ok := slot.BookingID(text)
	if !ok {
		if s.flow.Active() {
			s.flow.Reset()
			return cancelledDraftReply
		}
		return "Please tell me which booking to cancel. For example: 'Cancel booking BK12345'"
	}
	res, err := a.Cancel(ctx, s.username, id)
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		return fmt.Sprintf("❌ Booking %s not found or you don't have permission to cancel it.", id)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Sprintf("Booking %s is already cancelled.", id)
	case err != nil:
		a.log.Error("cancel reservation", zap.String("booking_id", id), zap.Error(err))
		return "❌ Error cancelling booking. Please try again later."
	}
	return fmt.Sprintf("✅ Booking %s has been cancelled. Your refund will be processed within 5-7 business days.", res.BookingID)
}

// Cancel cancels the stored reservation id on behalf of username and
// announces it.  Errors come from the reservation store unchanged.
func (a *Assistant) Cancel(ctx context.Context, username, id string) (model.Reservation, error) {
	res, err := a.bookings.Cancel(ctx, id, username)
	if err != nil {
		return res, err
	}
	a.publish("cancelled", res)
	return res, nil
}

func (a *Assistant) priceQuery(context.Context, *Session, string) string {
	return fmt.Sprintf("💰 **TICKET PRICES**\n\n"+
		"Standard Ticket: $%.2f\n"+
		"VIP Ticket: $%.2f\n"+
		"Tax: %g%%\n\n"+
		"Would you like to book tickets?",
		a.pricing.UnitPrice(model.SeatStandard),
		a.pricing.UnitPrice(model.SeatVIP),
		pricing.Round2(a.pricing.TaxRate*100))
}

func (a *Assistant) recommend(ctx context.Context, s *Session, _ string) string {
	cat := a.catalog.Catalog(ctx)
	var genre string
	if p, err := a.prefs.Get(ctx, s.username); err == nil {
		genre = p.Genre
	} else {
		a.log.Debug("load preferences", zap.String("user", s.username), zap.Error(err))
	}
	top := rankMovies(cat.Movies, genre)
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) == 0 {
		return "There are no movies to recommend right now."
	}

	var b strings.Builder
	b.WriteString("⭐ **RECOMMENDATIONS**\n")
	for i, m := range top {
		fmt.Fprintf(&b, "\n%d. **%s**\n", i+1, m.Title)
		fmt.Fprintf(&b, "   Genre: %s\n", m.Genre)
		fmt.Fprintf(&b, "   Rating: %s | IMDb: %.1f/10\n", m.Rating, m.Score)
		if m.Description != "" {
			fmt.Fprintf(&b, "   %s\n", truncate(m.Description, 100))
		}
	}
	b.WriteString("\nWhich one interests you?")
	return b.String()
}

// rankMovies orders by popularity, highest first, with movies of the
// preferred genre ahead of the rest.  Ties keep catalog order.
func rankMovies(movies []model.Movie, genre string) []model.Movie {
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	genre = strings.ToLower(genre)
	preferred := func(m model.Movie) bool {
		return genre != "" && strings.Contains(strings.ToLower(m.Genre), genre)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := preferred(out[i]), preferred(out[j])
		if pi != pj {
			return pi
		}
		return out[i].Popularity > out[j].Popularity
	})
	return out
}

func (a *Assistant) continueFlow(ctx context.Context, s *Session, text string) string {
	cat := a.catalog.Catalog(ctx)
	r := s.flow.Advance(text, cat.TheaterNames())
	switch r.Outcome {
	case booking.NotActive:
		return "Let's start a new booking! 🎬 Which movie would you like to watch?"
	case booking.Restarted:
		return restartedReply
	case booking.Cancelled:
		return cancelledDraftReply
	case booking.Confirm:
		return a.confirm(ctx, s)
	case booking.Redisplay:
		return a.summary(s.flow.Draft()) + "\n\n" + confirmPrompt
	case booking.OutOfRange:
		return fmt.Sprintf("You can book between 1 and %d tickets at a time. **How many tickets would you like?**", s.flow.MaxTickets())
	case booking.Missed:
		return a.reprompt(cat, s.flow.Draft())
	}
	return a.advanced(cat, s.flow.Draft(), r.Value)
}

// advanced acknowledges the slot just filled and asks for the next one.
func (a *Assistant) advanced(cat model.Catalog, d booking.Draft, value string) string {
	switch d.Step {
	case booking.AwaitingTime:
		return fmt.Sprintf("Perfect! 📅 You've selected **%s**.\n\n%s", value, timeQuestion(cat, d.Movie))
	case booking.AwaitingTickets:
		return fmt.Sprintf("Excellent! 🕐 You've selected **%s**.\n\n**How many tickets would you like?** (e.g. '2 tickets')", value)
	case booking.AwaitingTheater:
		return fmt.Sprintf("Got it! 🎫 **%s ticket(s)**\n\n%s", value, theaterQuestion(cat))
	case booking.AwaitingConfirmation:
		return fmt.Sprintf("Great choice! 🏢 **%s**\n\n%s\n\n%s", value, a.summary(d), confirmPrompt)
	}
	return a.reprompt(cat, d)
}

// reprompt asks again for whatever the current step needs.
func (a *Assistant) reprompt(cat model.Catalog, d booking.Draft) string {
	switch d.Step {
	case booking.AwaitingDate:
		return "Please tell me when you'd like to watch **" + d.Movie + "**: today, tomorrow, this weekend or a weekday."
	case booking.AwaitingTime:
		return "I didn't catch the time. " + timeQuestion(cat, d.Movie)
	case booking.AwaitingTickets:
		return "Please specify the number of tickets (e.g. '2 tickets')."
	case booking.AwaitingTheater:
		return "Please choose one of our theaters.\n\n" + theaterQuestion(cat)
	case booking.AwaitingConfirmation:
		return a.summary(d) + "\n\n" + confirmPrompt
	}
	return fallbackReply
}

func timeQuestion(cat model.Catalog, title string) string {
	q := "**What time would you prefer?** (e.g. '7pm' or '18:30')"
	if m, ok := findMovie(cat, title); ok {
		if times := cat.ShowtimesFor(m); len(times) > 0 {
			q += "\nShowtimes: " + strings.Join(times, ", ")
		}
	}
	return q
}

func theaterQuestion(cat model.Catalog) string {
	var b strings.Builder
	b.WriteString("**Which theater would you prefer?**\n")
	for _, t := range cat.Theaters {
		b.WriteString(theaterLine(t) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func theaterLine(t model.Theater) string {
	line := "• " + t.Name
	if t.Location != "" {
		line += " (" + t.Location + ")"
	}
	if t.VIP {
		line += " ✨ VIP"
	}
	return line
}

// summary renders the draft with its current price.
func (a *Assistant) summary(d booking.Draft) string {
	var b strings.Builder
	b.WriteString("📋 **BOOKING SUMMARY**\n")
	b.WriteString("══════════════════════════════\n")
	fmt.Fprintf(&b, "🎬 Movie: %s\n", d.Movie)
	fmt.Fprintf(&b, "📅 Date: %s\n", d.Date)
	fmt.Fprintf(&b, "🕐 Time: %s\n", d.Time)
	fmt.Fprintf(&b, "🎫 Tickets: %d\n", d.Tickets)
	fmt.Fprintf(&b, "🏢 Theater: %s\n", d.Theater)
	fmt.Fprintf(&b, "💺 Seat Type: %s\n", d.SeatClass)
	fmt.Fprintf(&b, "💰 Total Price: $%.2f\n", a.pricing.Price(d.Tickets, d.SeatClass))
	b.WriteString("══════════════════════════════")
	return b.String()
}

// confirm stores the draft as a reservation.  On a write failure the
// draft stays at the confirmation step so the user can retry.
func (a *Assistant) confirm(ctx context.Context, s *Session) string {
	d := s.flow.Draft()
	total := a.pricing.Price(d.Tickets, d.SeatClass)
	res, err := s.flow.Reservation(a.newID(), s.username, total, a.now())
	if err != nil {
		if errors.Is(err, booking.ErrTicketsOutOfRange) {
			s.flow.Reset()
			return fmt.Sprintf("❌ You can book between 1 and %d tickets at a time. Let's start again: which movie would you like to watch?", s.flow.MaxTickets())
		}
		return fallbackReply
	}
	if err := a.bookings.Append(ctx, res); err != nil {
		a.log.Error("save reservation", zap.String("booking_id", res.BookingID), zap.Error(err))
		return "❌ Error saving your booking, it has not been confirmed. Type 'confirm' to try again or 'cancel' to start over."
	}
	s.flow.Reset()
	a.publish("confirmed", res)
	a.rememberBooking(ctx, res)

	var b strings.Builder
	b.WriteString("🎉 **BOOKING CONFIRMED!**\n\n")
	fmt.Fprintf(&b, "Booking ID: **%s**\n", res.BookingID)
	fmt.Fprintf(&b, "🎬 %s\n", res.Movie)
	fmt.Fprintf(&b, "📅 %s at %s\n", res.Date, res.Time)
	fmt.Fprintf(&b, "🏢 %s\n", res.Theater)
	fmt.Fprintf(&b, "🎫 %d %s ticket(s)\n", res.Tickets, res.SeatType)
	fmt.Fprintf(&b, "💰 Total: $%.2f\n\n", res.TotalPrice)
	b.WriteString("Please arrive 15 minutes early. Enjoy the show! 🍿")
	return b.String()
}

func findMovie(cat model.Catalog, title string) (model.Movie, bool) {
	for _, m := range cat.Movies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return model.Movie{Title: title}, false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
