package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/polatblog/blog-platform/internal/api/middleware"
	"github.com/polatblog/blog-platform/internal/api/session"
)

// render draws a page template, stamping the current identity and draining
// pending flash notices into the view data. Popped flashes are persisted
// away so they show exactly once.
func render(c echo.Context, sessions *session.Manager, status int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}

	if s := middleware.CurrentSession(c); s != nil {
		data["Username"] = s.Data.Username
		if flashes := s.PopFlashes(); len(flashes) > 0 {
			data["Flashes"] = flashes
			if err := sessions.Save(c, s); err != nil {
				return err
			}
		}
	}

	return c.Render(status, name, data)
}

// flashRedirect queues a notice and redirects. A session is started on the
// spot when the request is anonymous so the notice survives the redirect.
func flashRedirect(c echo.Context, sessions *session.Manager, message, category, target string) error {
	s := middleware.CurrentSession(c)
	if s == nil {
		started, err := sessions.Start(c)
		if err != nil {
			return err
		}
		s = started
		middleware.SetSession(c, s)
	}

	s.AddFlash(message, category)
	if err := sessions.Save(c, s); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, target)
}
