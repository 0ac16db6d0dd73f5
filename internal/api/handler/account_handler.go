package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/polatblog/blog-platform/internal/api/metrics"
	"github.com/polatblog/blog-platform/internal/api/middleware"
	"github.com/polatblog/blog-platform/internal/api/session"
	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
)

// AccountHandler serves the registration, login and logout pages.
type AccountHandler struct {
	accounts ports.AccountService
	sessions *session.Manager
}

func NewAccountHandler(accounts ports.AccountService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{accounts: accounts, sessions: sessions}
}

// ShowRegister handles GET /register.
func (h *AccountHandler) ShowRegister(c echo.Context) error {
	return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{
		"Form": registrationForm{},
	})
}

// Register handles POST /register.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{
			"Form":  form,
			"Error": err.Error(),
		})
	}

	_, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return render(c, h.sessions, http.StatusOK, "register.html", echo.Map{
				"Form":  form,
				"Error": "This username is already registered",
			})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return flashRedirect(c, h.sessions, "Thanks for registering", "success", "/")
}

// ShowLogin handles GET /login.
func (h *AccountHandler) ShowLogin(c echo.Context) error {
	return render(c, h.sessions, http.StatusOK, "login.html", echo.Map{
		"Form": loginForm{},
	})
}

// Login handles POST /login. Every failure renders the same generic notice;
// on success the request gets a fresh authenticated session.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	user, err := h.accounts.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return render(c, h.sessions, http.StatusOK, "login.html", echo.Map{
				"Form":  form,
				"Error": "Username or password is wrong",
			})
		}
		return err
	}

	// Always a new session id on login; never reuse a pre-login slot.
	s, err := h.sessions.Start(c)
	if err != nil {
		return err
	}
	s.Authenticate(user.Username, user.Email)
	s.AddFlash("Welcome "+user.Username, "success")
	if err := h.sessions.Save(c, s); err != nil {
		return err
	}
	middleware.SetSession(c, s)

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout. The server-side document is deleted outright,
// so no attribute of the old identity can leak into a later session.
func (h *AccountHandler) Logout(c echo.Context) error {
	if s := middleware.CurrentSession(c); s != nil {
		if err := h.sessions.Destroy(c, s); err != nil {
			return err
		}
	}

	s, err := h.sessions.Start(c)
	if err != nil {
		return err
	}
	middleware.SetSession(c, s)
	s.AddFlash("Logout success", "info")
	if err := h.sessions.Save(c, s); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}
