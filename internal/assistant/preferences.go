package assistant

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

var genreWords = []string{"action", "comedy", "drama", "sci-fi", "thriller", "romance", "mystery"}

// learn records genre and time-of-day words for username.  Failures
// only reach the log.
func (a *Assistant) learn(ctx context.Context, username, text string) {
	lower := strings.ToLower(text)
	var genre string
	for _, g := range genreWords {
		if strings.Contains(lower, g) {
			genre = strings.ToUpper(g[:1]) + g[1:]
		}
	}
	var tod string
	switch {
	case strings.Contains(lower, "morning"):
		tod = "morning"
	case strings.Contains(lower, "afternoon"):
		tod = "afternoon"
	case strings.Contains(lower, "evening"), strings.Contains(lower, "night"):
		tod = "evening"
	}
	if genre == "" && tod == "" {
		return
	}
	err := a.prefs.Update(ctx, username, func(p *model.Preferences) bool {
		changed := false
		if genre != "" && p.Genre != genre {
			p.Genre = genre
			changed = true
		}
		if tod != "" && p.TimePreference != tod {
			p.TimePreference = tod
			changed = true
		}
		return changed
	})
	if err != nil {
		a.log.Warn("learn preferences", zap.String("user", username), zap.Error(err))
	}
}

// rememberBooking keeps the booked movie, theater and seat type as
// preferences for later recommendations.
func (a *Assistant) rememberBooking(ctx context.Context, res model.Reservation) {
	err := a.prefs.Update(ctx, res.Username, func(p *model.Preferences) bool {
		changed := false
		if !slices.Contains(p.FavoriteMovies, res.Movie) {
			p.FavoriteMovies = append(p.FavoriteMovies, res.Movie)
			changed = true
		}
		if p.TheaterPreference != res.Theater {
			p.TheaterPreference = res.Theater
			changed = true
		}
		if p.SeatType != res.SeatType {
			p.SeatType = res.SeatType
			changed = true
		}
		return changed
	})
	if err != nil {
		a.log.Warn("remember booking", zap.String("user", res.Username), zap.Error(err))
	}
}
