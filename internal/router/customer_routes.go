package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-assistant/internal/handler"
	"github.com/iliyamo/movie-booking-assistant/internal/middleware"
)

// RegisterCustomer registers the reservation endpoints under /v1.  A
// bearer token is optional; without one the caller is the guest user,
// exactly as in the chat.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.Identity(jwtSecret))
	g.GET("/my-reservations", h.ListReservations)
	g.GET("/reservations/:id", h.GetReservation)
	g.DELETE("/reservations/:id", h.DeleteReservation)
}

// RegisterChat registers the conversational endpoints.  Identity runs
// before session resolution so the session takes the caller's name;
// the rate limiter guards every turn.
func RegisterChat(e *echo.Echo, h *handler.ChatHandler, jwtSecret string, sessions, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.Identity(jwtSecret), limiter, sessions)
	g.POST("/chat", h.Chat)
	g.POST("/quick-book", h.QuickBook)
	g.POST("/auto-book", h.AutoBook)
	g.GET("/session", h.Session)
}
