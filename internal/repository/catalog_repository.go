package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/logger"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/store"
)

// CatalogDocument is the name of the catalog document.
const CatalogDocument = "movies"

// CatalogRepo serves the movie catalog.  The catalog is read once and
// kept in memory; it does not change while the process runs.
type CatalogRepo struct {
	docs store.Documents
	log  *zap.Logger

	mu     sync.Mutex
	loaded *model.Catalog
}

// NewCatalogRepo constructs a CatalogRepo over the given documents.
func NewCatalogRepo(docs store.Documents, log *zap.Logger) *CatalogRepo {
	return &CatalogRepo{docs: docs, log: logger.Or(log)}
}

// Catalog returns the catalog.  It never fails: a missing document is
// seeded with DefaultCatalog, and a document that cannot be read or
// decoded is replaced in memory by the defaults (the stored copy is
// left alone so an operator can repair it).
func (r *CatalogRepo) Catalog(ctx context.Context) model.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded != nil {
		return *r.loaded
	}

	var c model.Catalog
	err := r.docs.Read(ctx, CatalogDocument, &c)
	switch {
	case err == nil:
		r.loaded = &c
		return c
	case errors.Is(err, store.ErrNotExist):
		c = DefaultCatalog()
		if err := r.docs.Replace(ctx, CatalogDocument, c); err != nil {
			r.log.Warn("catalog: seeding default catalog failed", zap.Error(err))
		}
		r.loaded = &c
		return c
	default:
		// not cached, the next call tries the store again
		r.log.Warn("catalog: read failed, serving defaults", zap.Error(err))
		return DefaultCatalog()
	}
}

// FindMovie returns the movie with the given title, compared
// case-insensitively.
func (r *CatalogRepo) FindMovie(ctx context.Context, title string) (model.Movie, bool) {
	for _, m := range r.Catalog(ctx).Movies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return model.Movie{}, false
}

// DefaultCatalog returns the catalog written on first run.
func DefaultCatalog() model.Catalog {
	return model.Catalog{
		Movies: []model.Movie{
			{
				ID: 1, Title: "The Last Adventure", Genre: "Action/Adventure", Duration: "2h 15m", Rating: "PG-13",
				Description: "An epic journey through uncharted territories.",
				Director:    "Alex Rivera", Cast: []string{"Chris Evans", "Zendaya", "Idris Elba"},
				Score: 7.8, Popularity: 95,
				Showtimes: []string{"10:00 AM", "1:30 PM", "4:00 PM", "6:30 PM", "9:00 PM"},
			},
			{
				ID: 2, Title: "Cosmic Dreams", Genre: "Sci-Fi", Duration: "2h 30m", Rating: "PG",
				Description: "A mind-bending journey through space and time.",
				Director:    "Lisa Chen", Cast: []string{"Tom Hanks", "Millie Bobby Brown", "Keanu Reeves"},
				Score: 8.2, Popularity: 98,
				Showtimes: []string{"11:00 AM", "2:30 PM", "5:00 PM", "8:30 PM"},
			},
			{
				ID: 3, Title: "Heartstrings", Genre: "Romance/Drama", Duration: "1h 50m", Rating: "PG-13",
				Description: "A love story that transcends time.",
				Director:    "Sophia Lee", Cast: []string{"Emma Stone", "Timothée Chalamet", "Viola Davis"},
				Score: 7.5, Popularity: 88,
				Showtimes: []string{"12:00 PM", "3:30 PM", "7:00 PM", "10:00 PM"},
			},
			{
				ID: 4, Title: "Midnight Mystery", Genre: "Thriller/Mystery", Duration: "2h 5m", Rating: "R",
				Description: "A detective races against time to solve a century-old mystery.",
				Director:    "James Nolan", Cast: []string{"Daniel Craig", "Ana de Armas", "Anthony Hopkins"},
				Score: 8.0, Popularity: 92,
				Showtimes: []string{"1:00 PM", "4:30 PM", "9:00 PM"},
			},
			{
				ID: 5, Title: "Laugh Out Loud", Genre: "Comedy", Duration: "1h 45m", Rating: "PG",
				Description: "The funniest movie of the year!",
				Director:    "Kevin Hart", Cast: []string{"Ryan Reynolds", "Tiffany Haddish", "Jack Black"},
				Score: 6.9, Popularity: 85,
				Showtimes: []string{"10:30 AM", "2:00 PM", "5:30 PM", "9:30 PM"},
			},
		},
		Theaters: []model.Theater{
			{ID: 1, Name: "City Center Cinemas", Location: "Downtown", VIP: true, Popularity: 95},
			{ID: 2, Name: "Starlight Theater", Location: "Westside Mall", VIP: true, Popularity: 88},
			{ID: 3, Name: "Grand Arena", Location: "Eastgate Complex", VIP: false, Popularity: 82},
			{ID: 4, Name: "Royal IMAX", Location: "North Plaza", VIP: true, Popularity: 92},
		},
		Showtimes: []string{"10:00 AM", "1:30 PM", "4:00 PM", "6:30 PM", "9:00 PM"},
	}
}
