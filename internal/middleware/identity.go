package middleware

// identity.go holds the context keys shared across middleware files and
// the accessors handlers use to read them.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/model"
)

const (
	ctxUsername       = "username"
	ctxSession        = "chat_session"
	ctxSessionCreated = "chat_session_created"
)

// Username returns the authenticated username, or "guest" when the
// request carried no token.
func Username(c echo.Context) string {
	if v, ok := c.Get(ctxUsername).(string); ok && v != "" {
		return v
	}
	return model.GuestUsername
}

// Session returns the chat session resolved by ChatSessions.
func Session(c echo.Context) *assistant.Session {
	s, _ := c.Get(ctxSession).(*assistant.Session)
	return s
}

// SessionCreated reports whether ChatSessions started a new session
// for this request.
func SessionCreated(c echo.Context) bool {
	v, _ := c.Get(ctxSessionCreated).(bool)
	return v
}
