package assistant

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/logger"
)

// Suggestions are the advisory lines offered to idle sessions.
var Suggestions = []string{
	"Tip: VIP seats come with extra legroom, just say 'VIP' while booking.",
	"Did you know? Evening shows are the most popular, book early!",
	"Try asking me for recommendations based on your favourite genre.",
	"Quick tip: say 'my bookings' to see your reservations.",
	"Weekend showings fill up fast, plan ahead!",
}

// Suggester periodically offers a suggestion to every live session and
// drops sessions that have been idle too long.  It never touches a
// draft.
type Suggester struct {
	Registry *Registry
	Interval time.Duration
	Log      *zap.Logger

	// Pick chooses the next suggestion; nil picks at random.
	Pick func() string
	Now  func() time.Time
}

// Run blocks until ctx is cancelled.
func (g *Suggester) Run(ctx context.Context) {
	log := logger.Or(g.Log)
	interval := g.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	pick := g.Pick
	if pick == nil {
		pick = func() string { return Suggestions[rand.IntN(len(Suggestions))] }
	}
	now := g.Now
	if now == nil {
		now = time.Now
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	log.Info("suggester started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			log.Info("suggester stopped")
			return
		case <-t.C:
			g.Tick(pick(), now())
		}
	}
}

// Tick offers one suggestion and sweeps expired sessions.
func (g *Suggester) Tick(suggestion string, now time.Time) {
	if n := g.Registry.Sweep(now); n > 0 {
		logger.Or(g.Log).Debug("expired sessions", zap.Int("count", n))
	}
	g.Registry.Each(func(s *Session) { s.Offer(suggestion) })
}
