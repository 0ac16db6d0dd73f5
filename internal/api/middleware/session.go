package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/polatblog/blog-platform/internal/api/session"
)

const sessionContextKey = "session"

// LoadSession resolves the request's session from its cookie and injects it
// into the echo context. Anonymous requests proceed with no session set; a
// store failure is surfaced to the central error handler.
func LoadSession(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := manager.Load(c)
			if err != nil {
				return err
			}
			if s != nil {
				c.Set(sessionContextKey, s)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session injected by LoadSession, or nil for an
// anonymous request.
func CurrentSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionContextKey).(*session.Session)
	return s
}

// SetSession replaces the session on the echo context. Used by handlers that
// start a fresh session mid-request (login, first flash).
func SetSession(c echo.Context, s *session.Session) {
	c.Set(sessionContextKey, s)
}
