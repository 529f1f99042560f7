package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/booking"
	"github.com/iliyamo/movie-booking-assistant/internal/middleware"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

// maxMessageLen bounds one chat utterance.
const maxMessageLen = 1000

// ChatHandler exposes the conversational API.  Every route expects the
// ChatSessions middleware to have resolved a session.
type ChatHandler struct {
	Assistant *assistant.Assistant
}

type chatReq struct {
	Message string `json:"message"`
}

type chatResp struct {
	Reply     string `json:"reply"`
	Greeting  string `json:"greeting,omitempty"`
	Step      string `json:"step"`
	SessionID string `json:"session_id"`
}

// DraftView is the booking draft as returned by GET /v1/session.
type DraftView struct {
	Step      string          `json:"step"`
	StepIndex int             `json:"step_index"`
	Steps     int             `json:"steps"`
	Movie     string          `json:"movie,omitempty"`
	Date      string          `json:"date,omitempty"`
	Time      string          `json:"time,omitempty"`
	Tickets   int             `json:"tickets"`
	Theater   string          `json:"theater,omitempty"`
	SeatType  model.SeatClass `json:"seat_type"`
}

func draftView(d booking.Draft) DraftView {
	return DraftView{
		Step: d.Step.String(), StepIndex: int(d.Step), Steps: booking.TotalSteps,
		Movie: d.Movie, Date: d.Date, Time: d.Time, Tickets: d.Tickets,
		Theater: d.Theater, SeatType: d.SeatClass,
	}
}

// Chat handles POST /v1/chat: one conversational turn.  A brand new
// session also gets the opening greeting.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
	}
	if len(msg) > maxMessageLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "message too long"})
	}

	s := middleware.Session(c)
	var greeting string
	if middleware.SessionCreated(c) {
		greeting = h.Assistant.Greet(s)
	}
	reply := h.Assistant.Respond(c.Request().Context(), s, msg)
	return c.JSON(http.StatusOK, chatResp{
		Reply:     reply,
		Greeting:  greeting,
		Step:      s.Draft().Step.String(),
		SessionID: s.ID,
	})
}

// QuickBook handles POST /v1/quick-book: the structured booking form.
// The draft ends at the confirmation step; the client confirms through
// /v1/chat.
func (h *ChatHandler) QuickBook(c echo.Context) error {
	var req assistant.QuickBookRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	s := middleware.Session(c)
	summary, err := h.Assistant.QuickBook(c.Request().Context(), s, req)
	switch {
	case errors.Is(err, assistant.ErrUnknownMovie):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown movie"})
	case errors.Is(err, booking.ErrIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie, date and time are required"})
	case errors.Is(err, booking.ErrTicketsOutOfRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket count out of range"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "quick booking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"summary":    summary,
		"draft":      draftView(s.Draft()),
		"session_id": s.ID,
	})
}

// Session handles GET /v1/session: draft, progress line and the
// conversation log.
func (h *ChatHandler) Session(c echo.Context) error {
	s := middleware.Session(c)
	return c.JSON(http.StatusOK, echo.Map{
		"session_id": s.ID,
		"username":   s.Username(),
		"status":     h.Assistant.Status(s),
		"draft":      draftView(s.Draft()),
		"history":    s.History(),
	})
}

// AutoBook handles POST /v1/auto-book.
func (h *ChatHandler) AutoBook(c echo.Context) error {
	s := middleware.Session(c)
	return c.JSON(http.StatusOK, echo.Map{
		"reply":      h.Assistant.AutoBook(c.Request().Context(), s),
		"session_id": s.ID,
	})
}
