package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/logger"
)

// SessionHeader carries the chat session id for clients without
// cookies.  It is always echoed back on the response.
const SessionHeader = "X-Session-ID"

const (
	cookieName = "chat-session"
	cookieKey  = "sid"
)

// NewCookieStore returns the signed cookie store for chat sessions.
func NewCookieStore(secret string, secure bool, maxAge int) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// ChatSessions resolves the chat session of the request from the
// session cookie or, without one, the X-Session-ID header.  A new
// session is created when neither names a live session the caller may
// use.  It must run after Identity: the session is bound to the
// identity of the current request.
func ChatSessions(store sessions.Store, reg *assistant.Registry, log *zap.Logger) echo.MiddlewareFunc {
	log = logger.Or(log)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			// a tampered or stale cookie decodes to a fresh session
			cookie, _ := store.Get(req, cookieName)

			// the signed cookie wins; the header is for cookieless clients
			id, _ := cookie.Values[cookieKey].(string)
			if id == "" {
				id = req.Header.Get(SessionHeader)
			}
			s, created := reg.Resolve(id, Username(c))

			if created || cookie.Values[cookieKey] != s.ID {
				cookie.Values[cookieKey] = s.ID
				if err := cookie.Save(req, c.Response()); err != nil {
					log.Warn("save session cookie", zap.Error(err))
				}
			}
			c.Response().Header().Set(SessionHeader, s.ID)
			c.Set(ctxSession, s)
			c.Set(ctxSessionCreated, created)
			return next(c)
		}
	}
}
