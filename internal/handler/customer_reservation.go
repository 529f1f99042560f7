package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/logger"
	"github.com/iliyamo/movie-booking-assistant/internal/middleware"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
	"github.com/iliyamo/movie-booking-assistant/internal/repository"
)

// CustomerHandler lists and cancels the caller's reservations.  The
// caller is whoever the Identity middleware resolved, "guest" included.
type CustomerHandler struct {
	Reservations *repository.ReservationRepo
	Assistant    *assistant.Assistant
	Log          *zap.Logger
}

// NewCustomerHandler constructs a CustomerHandler.  All dependencies
// must be non-nil.
func NewCustomerHandler(res *repository.ReservationRepo, a *assistant.Assistant, log *zap.Logger) *CustomerHandler {
	if res == nil || a == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Reservations: res, Assistant: a, Log: logger.Or(log)}
}

// ListReservations handles GET /v1/my-reservations.  Reservations come
// back in creation order.
func (h *CustomerHandler) ListReservations(c echo.Context) error {
	user := middleware.Username(c)
	list, err := h.Reservations.ListByUser(c.Request().Context(), user)
	if err != nil {
		h.Log.Error("list reservations", zap.String("user", user), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservations"})
	}
	if list == nil {
		list = []model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *CustomerHandler) GetReservation(c echo.Context) error {
	id := strings.ToUpper(strings.TrimSpace(c.Param("id")))
	res, err := h.Reservations.Get(c.Request().Context(), id, middleware.Username(c))
	if err != nil {
		return h.reservationError(c, id, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteReservation handles DELETE /v1/reservations/:id.  With the soft
// policy the cancelled reservation is returned; with the hard policy
// the response is 204.
func (h *CustomerHandler) DeleteReservation(c echo.Context) error {
	id := strings.ToUpper(strings.TrimSpace(c.Param("id")))
	res, err := h.Assistant.Cancel(c.Request().Context(), middleware.Username(c), id)
	if err != nil {
		return h.reservationError(c, id, err)
	}
	if h.Reservations.Policy() == repository.HardCancel {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CustomerHandler) reservationError(c echo.Context, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
	}
	h.Log.Error("reservation", zap.String("booking_id", id), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation store failed"})
}
