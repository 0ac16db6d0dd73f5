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

const notAuthorizedNotice = "You are not authorized for this"

// ArticleHandler serves the public article pages and the owner-gated
// create/edit/delete flows.
type ArticleHandler struct {
	articles ports.ArticleService
	sessions *session.Manager
}

func NewArticleHandler(articles ports.ArticleService, sessions *session.Manager) *ArticleHandler {
	return &ArticleHandler{articles: articles, sessions: sessions}
}

// Home handles GET /, the public index listing every article.
func (h *ArticleHandler) Home(c echo.Context) error {
	articles, err := h.articles.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, h.sessions, http.StatusOK, "index.html", echo.Map{
		"Articles": articles,
	})
}

// Dashboard handles GET /dashboard, the owner's private article list.
func (h *ArticleHandler) Dashboard(c echo.Context) error {
	s := middleware.CurrentSession(c)
	articles, err := h.articles.ListByOwner(c.Request().Context(), s.Data.Username)
	if err != nil {
		return err
	}
	return render(c, h.sessions, http.StatusOK, "dashboard.html", echo.Map{
		"Articles": articles,
	})
}

// Show handles GET /post/:id. Reads are public; a missing article renders
// the page in its not-found state rather than erroring.
func (h *ArticleHandler) Show(c echo.Context) error {
	article, err := h.articles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return render(c, h.sessions, http.StatusOK, "post.html", echo.Map{})
		}
		return err
	}
	return render(c, h.sessions, http.StatusOK, "post.html", echo.Map{
		"Article": article,
	})
}

// ShowCreate handles GET /addarticle.
func (h *ArticleHandler) ShowCreate(c echo.Context) error {
	return render(c, h.sessions, http.StatusOK, "addarticle.html", echo.Map{
		"Form": articleForm{},
	})
}

// Create handles POST /addarticle. The owner comes from the session, never
// from the form.
func (h *ArticleHandler) Create(c echo.Context) error {
	var form articleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "addarticle.html", echo.Map{
			"Form":  form,
			"Error": err.Error(),
		})
	}

	s := middleware.CurrentSession(c)
	_, err := h.articles.Create(c.Request().Context(), ports.CreateArticleInput{
		Owner:    s.Data.Username,
		Author:   form.Author,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Content:  form.Content,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return flashRedirect(c, h.sessions, "Article is added", "success", "/")
}

// ShowEdit handles GET /edit/:id, pre-filling the form through the
// ownership-checked fetch.
func (h *ArticleHandler) ShowEdit(c echo.Context) error {
	s := middleware.CurrentSession(c)
	article, err := h.articles.GetOwned(c.Request().Context(), c.Param("id"), s.Data.Username)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			metrics.DeniedMutationsTotal.Inc()
			return flashRedirect(c, h.sessions, notAuthorizedNotice, "danger", "/")
		}
		return err
	}

	return render(c, h.sessions, http.StatusOK, "edit.html", echo.Map{
		"ID": article.ID,
		"Form": articleForm{
			Title:    article.Title,
			Subtitle: article.Subtitle,
			Author:   article.Author,
			Content:  article.Content,
		},
	})
}

// Update handles POST /edit/:id.
func (h *ArticleHandler) Update(c echo.Context) error {
	var form articleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if err := c.Validate(&form); err != nil {
		return render(c, h.sessions, http.StatusOK, "edit.html", echo.Map{
			"ID":    c.Param("id"),
			"Form":  form,
			"Error": err.Error(),
		})
	}

	s := middleware.CurrentSession(c)
	err := h.articles.Update(c.Request().Context(), c.Param("id"), s.Data.Username, ports.UpdateArticleInput{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Author:   form.Author,
		Content:  form.Content,
	})
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			metrics.DeniedMutationsTotal.Inc()
			return flashRedirect(c, h.sessions, notAuthorizedNotice, "danger", "/")
		}
		return err
	}

	metrics.ArticlesUpdatedTotal.Inc()
	return flashRedirect(c, h.sessions, "Edit is success", "success", "/dashboard")
}

// Delete handles GET /delete/:id.
func (h *ArticleHandler) Delete(c echo.Context) error {
	s := middleware.CurrentSession(c)
	err := h.articles.Delete(c.Request().Context(), c.Param("id"), s.Data.Username)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			metrics.DeniedMutationsTotal.Inc()
			return flashRedirect(c, h.sessions, notAuthorizedNotice, "danger", "/")
		}
		return err
	}

	metrics.ArticlesDeletedTotal.Inc()
	return flashRedirect(c, h.sessions, "Delete is success", "success", "/dashboard")
}
