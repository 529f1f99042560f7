package handler // declare the package name; contains HTTP handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/movie-booking-assistant/internal/assistant"
)

// HealthHandler reports liveness along with the number of live chat
// sessions.
type HealthHandler struct {
    Sessions *assistant.Registry
}

// Health is used by load balancers and monitoring systems to verify
// that the service is running.
func (h *HealthHandler) Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok", "sessions": h.Sessions.Len()})
}
