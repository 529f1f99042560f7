// Package handler exposes the HTTP handlers of the booking assistant.
// This file holds the read-only catalog endpoints.  They need no
// authentication and are served through the Redis response cache.

package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/movie-booking-assistant/internal/model"
    "github.com/iliyamo/movie-booking-assistant/internal/pricing"
)

// MovieCatalog is the part of the catalog repository the browse
// endpoints use.
type MovieCatalog interface {
    Catalog(ctx context.Context) model.Catalog
    FindMovie(ctx context.Context, title string) (model.Movie, bool)
}

// PublicHandler serves the movie catalog and the price list.
type PublicHandler struct {
    Catalog MovieCatalog
    Pricing pricing.Engine
}

// PublicMovie is a movie as listed by GET /v1/movies.
type PublicMovie struct {
    Title       string   `json:"title"`
    Genre       string   `json:"genre"`
    Duration    string   `json:"duration"`
    Rating      string   `json:"rating"`
    Description string   `json:"description"`
    Director    string   `json:"director,omitempty"`
    Cast        []string `json:"cast,omitempty"`
    Score       float64  `json:"imdb,omitempty"`
    Showtimes   []string `json:"showtimes"`
}

// GetMovies lists the catalog movies in catalog order, each with its
// effective showtimes.
func (h *PublicHandler) GetMovies(c echo.Context) error {
    cat := h.Catalog.Catalog(c.Request().Context())
    out := make([]PublicMovie, 0, len(cat.Movies))
    for _, m := range cat.Movies {
        out = append(out, toPublicMovie(cat, m))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func toPublicMovie(cat model.Catalog, m model.Movie) PublicMovie {
    times := cat.ShowtimesFor(m)
    if times == nil {
        times = []string{}
    }
    return PublicMovie{
        Title: m.Title, Genre: m.Genre, Duration: m.Duration, Rating: m.Rating,
        Description: m.Description, Director: m.Director, Cast: m.Cast, Score: m.Score,
        Showtimes: times,
    }
}

// GetMovie returns one movie by title (case-insensitive).
func (h *PublicHandler) GetMovie(c echo.Context) error {
    ctx := c.Request().Context()
    m, ok := h.Catalog.FindMovie(ctx, c.Param("title"))
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
    }
    return c.JSON(http.StatusOK, toPublicMovie(h.Catalog.Catalog(ctx), m))
}

// GetTheaters lists the theaters.
func (h *PublicHandler) GetTheaters(c echo.Context) error {
    cat := h.Catalog.Catalog(c.Request().Context())
    out := cat.Theaters
    if out == nil {
        out = []model.Theater{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetPrices returns the unit prices per seat class and the tax rate.
func (h *PublicHandler) GetPrices(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "standard": h.Pricing.UnitPrice(model.SeatStandard),
        "vip":      h.Pricing.UnitPrice(model.SeatVIP),
        "tax_rate": h.Pricing.TaxRate,
    })
}
