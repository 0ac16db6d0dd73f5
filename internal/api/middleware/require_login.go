package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/polatblog/blog-platform/internal/api/session"
)

// RequireLogin gates a route on an authenticated session. Anonymous requests
// are flashed a warning and redirected to the login page; the wrapped handler
// never runs. Authenticated requests pass through unchanged.
func RequireLogin(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if s.Authenticated() {
				return next(c)
			}

			if s == nil {
				started, err := manager.Start(c)
				if err != nil {
					return err
				}
				s = started
				SetSession(c, s)
			}

			s.AddFlash("You must be login to view this page.", "warning")
			if err := manager.Save(c, s); err != nil {
				return err
			}
			return c.Redirect(http.StatusFound, "/login")
		}
	}
}
