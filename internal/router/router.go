package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-assistant/internal/handler"
	"github.com/iliyamo/movie-booking-assistant/internal/middleware"
)

// RegisterRoutes registers routes that do not require any identity.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterAuth registers the account routes.  Register and login are
// open; /v1/me reports the identity of an optional bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	e.GET("/v1/me", a.Me, middleware.Identity(jwtSecret))
}

// RegisterPublic registers the read-only catalog endpoints behind the
// response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/movies", p.GetMovies)
	g.GET("/movies/:title", p.GetMovie)
	g.GET("/theaters", p.GetTheaters)
	g.GET("/prices", p.GetPrices)
}
