// Package assistant is the dialogue orchestrator.  It classifies each
// utterance, routes it to a handler, drives the booking flow and talks
// to the catalog, reservation and preference stores.
package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/intent"
	"github.com/iliyamo/movie-booking-assistant/internal/logger"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/pricing"
)

// CatalogSource serves the movie catalog.  It never fails; a broken
// document yields the built-in defaults.
type CatalogSource interface {
	Catalog(ctx context.Context) model.Catalog
}

// ReservationStore persists confirmed reservations.
type ReservationStore interface {
	Append(ctx context.Context, res model.Reservation) error
	ListByUser(ctx context.Context, username string) ([]model.Reservation, error)
	Cancel(ctx context.Context, id, username string) (model.Reservation, error)
}

// PreferenceStore keeps learned per-user preferences.
type PreferenceStore interface {
	Get(ctx context.Context, username string) (model.Preferences, error)
	Update(ctx context.Context, username string, fn func(*model.Preferences) bool) error
}

// EventPublisher announces reservation changes to other systems.
// Failures are logged and never reach the user.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, res model.Reservation) error
	BookingCancelled(ctx context.Context, res model.Reservation) error
}

// Deps wires the orchestrator.  Catalog, Reservations and Preferences
// are required; the rest have defaults.
type Deps struct {
	Catalog      CatalogSource
	Reservations ReservationStore
	Preferences  PreferenceStore
	Pricing      *pricing.Engine // nil selects pricing.Default
	Events       EventPublisher
	Log          *zap.Logger

	// DefaultTheater is used by quick booking and auto booking.
	DefaultTheater string
	// SurfaceSuggestions appends a queued suggestion to idle replies.
	SurfaceSuggestions bool
	// PublishTimeout bounds one event publish.  Zero means 5s.
	PublishTimeout time.Duration

	NewID func() string
	Now   func() time.Time
}

type handler func(ctx context.Context, s *Session, text string) string

type route struct {
	intent intent.Intent
	handle handler
}

// Assistant answers utterances for any number of sessions.  All state
// lives in the Session passed to each call.
type Assistant struct {
	catalog  CatalogSource
	bookings ReservationStore
	prefs    PreferenceStore
	pricing  pricing.Engine
	events   EventPublisher
	log      *zap.Logger

	defaultTheater string
	surface        bool
	publishTimeout time.Duration
	newID          func() string
	now            func() time.Time

	routes []route
}

// New builds an Assistant.
func New(d Deps) *Assistant {
	a := &Assistant{
		catalog:        d.Catalog,
		bookings:       d.Reservations,
		prefs:          d.Preferences,
		events:         d.Events,
		log:            logger.Or(d.Log),
		defaultTheater: d.DefaultTheater,
		surface:        d.SurfaceSuggestions,
		publishTimeout: d.PublishTimeout,
		newID:          d.NewID,
		now:            d.Now,
	}
	a.pricing = pricing.Default()
	if d.Pricing != nil {
		a.pricing = *d.Pricing
	}
	if a.events == nil {
		a.events = nopEvents{}
	}
	if a.defaultTheater == "" {
		a.defaultTheater = "City Center Cinemas"
	}
	if a.publishTimeout <= 0 {
		a.publishTimeout = 5 * time.Second
	}
	if a.newID == nil {
		a.newID = NewBookingID
	}
	if a.now == nil {
		a.now = time.Now
	}

	// Dispatch order follows the classifier's rule order.
	a.routes = []route{
		{intent.Greeting, a.greeting},
		{intent.BookRequest, a.bookRequest},
		{intent.ShowCatalog, a.showCatalog},
		{intent.ViewReservations, a.viewReservations},
		{intent.CancelReservation, a.cancelReservation},
		{intent.PriceQuery, a.priceQuery},
		{intent.RecommendationQuery, a.recommend},
		{intent.HelpRequest, a.help},
		{intent.Thanks, a.thanks},
		{intent.FlowContinuation, a.continueFlow},
	}
	return a
}

// NewBookingID returns "BK" followed by five random digits.  Collisions
// are not checked.
func NewBookingID() string {
	return fmt.Sprintf("BK%d", 10000+rand.IntN(90000))
}

// Respond runs one conversational turn and returns the reply.
func (a *Assistant) Respond(ctx context.Context, s *Session, utterance string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := a.now()
	s.Touch(now)
	text := strings.TrimSpace(utterance)
	s.record(now, SenderUser, text)

	a.learn(ctx, s.username, text)

	in := intent.Classify(text, s.flow.Active())
	reply := a.dispatch(ctx, s, in, text)
	a.log.Debug("turn",
		zap.String("session", s.ID),
		zap.String("intent", in.String()),
		zap.String("step", s.flow.Draft().Step.String()))

	if a.surface && !s.flow.Active() {
		if tip, ok := s.takeSuggestion(); ok {
			reply += "\n\n💡 " + tip
		}
	}
	s.record(a.now(), SenderBot, reply)
	return reply
}

func (a *Assistant) dispatch(ctx context.Context, s *Session, in intent.Intent, text string) string {
	for _, r := range a.routes {
		if r.intent == in {
			return r.handle(ctx, s, text)
		}
	}
	return fallbackReply
}

// Greet returns the opening line for a new session, based on the time
// of day, and logs it.
func (a *Assistant) Greet(s *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := a.now()
	var part string
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		part = "Good morning"
	case h >= 12 && h < 17:
		part = "Good afternoon"
	case h >= 17 && h < 22:
		part = "Good evening"
	default:
		part = "Hello"
	}
	reply := part + "! 🎬 I'm your movie booking assistant.\n\n" + capabilities
	s.record(now, SenderBot, reply)
	return reply
}

// publish sends an event in the background so a slow broker never
// delays a reply.
func (a *Assistant) publish(kind string, res model.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.publishTimeout)
		defer cancel()
		var err error
		switch kind {
		case "confirmed":
			err = a.events.BookingConfirmed(ctx, res)
		case "cancelled":
			err = a.events.BookingCancelled(ctx, res)
		}
		if err != nil {
			a.log.Warn("publish booking event",
				zap.String("kind", kind),
				zap.String("booking_id", res.BookingID),
				zap.Error(err))
		}
	}()
}

type nopEvents struct{}

func (nopEvents) BookingConfirmed(context.Context, model.Reservation) error { return nil }
func (nopEvents) BookingCancelled(context.Context, model.Reservation) error { return nil }
