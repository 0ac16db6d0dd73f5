package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/polatblog/blog-platform/internal/api/middleware"
	"github.com/polatblog/blog-platform/internal/api/session"
	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
	"github.com/polatblog/blog-platform/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory stubs: session store, user repo, article repo
// ---------------------------------------------------------------------------

type memStore struct {
	docs map[string]*session.Data
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]*session.Data)}
}

func (s *memStore) Get(_ context.Context, id string) (*session.Data, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	clone := *d
	clone.Flashes = append([]session.Flash(nil), d.Flashes...)
	return &clone, nil
}

func (s *memStore) Save(_ context.Context, id string, data *session.Data, _ time.Duration) error {
	clone := *data
	clone.Flashes = append([]session.Flash(nil), data.Flashes...)
	s.docs[id] = &clone
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.docs, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = user.Username
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubArticleRepo struct {
	articles map[string]*domain.Article
	nextID   int
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[string]*domain.Article)}
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("%d", r.nextID)
	r.articles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubArticleRepo) FindAll(_ context.Context) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubArticleRepo) FindByOwner(_ context.Context, owner string) ([]domain.Article, error) {
	var out []domain.Article
	for _, a := range r.articles {
		if a.Owner == owner {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) FindByIDAndOwner(_ context.Context, id, owner string) (*domain.Article, error) {
	a, ok := r.articles[id]
	if !ok || a.Owner != owner {
		return nil, domain.ErrArticleNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubArticleRepo) Update(_ context.Context, id, owner string, fields ports.ArticleUpdate) error {
	a, ok := r.articles[id]
	if !ok || a.Owner != owner {
		return domain.ErrArticleNotFound
	}
	a.Title = fields.Title
	a.Subtitle = fields.Subtitle
	a.Author = fields.Author
	a.Content = fields.Content
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id, owner string) error {
	a, ok := r.articles[id]
	if !ok || a.Owner != owner {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}

// testRenderer records what a page render would show so assertions can look
// at template names, inline errors and flash notices without real HTML.
type testRenderer struct{}

func (tr *testRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	fmt.Fprintf(w, "template: %s\n", name)
	m, ok := data.(echo.Map)
	if !ok {
		return nil
	}
	if msg, ok := m["Error"].(string); ok && msg != "" {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	if flashes, ok := m["Flashes"].([]session.Flash); ok {
		for _, f := range flashes {
			fmt.Fprintf(w, "flash: %s: %s\n", f.Category, f.Message)
		}
	}
	if articles, ok := m["Articles"].([]domain.Article); ok {
		fmt.Fprintf(w, "articles: %d\n", len(articles))
	}
	if a, ok := m["Article"].(*domain.Article); ok {
		fmt.Fprintf(w, "article: %s\n", a.Title)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Test application: real services, stub repos, the production route table
// ---------------------------------------------------------------------------

type testApp struct {
	e        *echo.Echo
	store    *memStore
	users    *stubUserRepo
	articles *stubArticleRepo
	cookies  []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	app := &testApp{
		store:    newMemStore(),
		users:    newStubUserRepo(),
		articles: newStubArticleRepo(),
	}

	e := echo.New()
	e.Renderer = &testRenderer{}
	e.Validator = NewValidator()

	sessions := session.NewManager(app.store, "test-secret", time.Hour)
	accountHandler := NewAccountHandler(service.NewAccountService(app.users, zerolog.Nop()), sessions)
	articleHandler := NewArticleHandler(service.NewArticleService(app.articles, zerolog.Nop()), sessions)

	e.Use(middleware.LoadSession(sessions))
	requireLogin := middleware.RequireLogin(sessions)

	e.GET("/", articleHandler.Home)
	e.GET("/register", accountHandler.ShowRegister)
	e.POST("/register", accountHandler.Register)
	e.GET("/login", accountHandler.ShowLogin)
	e.POST("/login", accountHandler.Login)
	e.GET("/post/:id", articleHandler.Show)
	e.GET("/logout", accountHandler.Logout, requireLogin)
	e.GET("/dashboard", articleHandler.Dashboard, requireLogin)
	e.GET("/addarticle", articleHandler.ShowCreate, requireLogin)
	e.POST("/addarticle", articleHandler.Create, requireLogin)
	e.GET("/edit/:id", articleHandler.ShowEdit, requireLogin)
	e.POST("/edit/:id", articleHandler.Update, requireLogin)
	e.GET("/delete/:id", articleHandler.Delete, requireLogin)

	app.e = e
	return app
}

// do performs a request, carrying the client's cookie jar across calls like
// a browser would.
func (app *testApp) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, ck := range app.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		app.setCookie(ck)
	}
	return rec
}

func (app *testApp) setCookie(ck *http.Cookie) {
	for i, existing := range app.cookies {
		if existing.Name == ck.Name {
			if ck.MaxAge < 0 {
				app.cookies = append(app.cookies[:i], app.cookies[i+1:]...)
			} else {
				app.cookies[i] = ck
			}
			return
		}
	}
	if ck.MaxAge >= 0 {
		app.cookies = append(app.cookies, ck)
	}
}

func (app *testApp) register(t *testing.T, username, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return app.do(t, http.MethodPost, "/register", url.Values{
		"username":   {username},
		"email":      {email},
		"password":   {password},
		"confirm":    {password},
		"accept_tos": {"true"},
	})
}

func (app *testApp) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	return app.do(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func (app *testApp) createArticle(t *testing.T, title, subtitle, author, content string) *httptest.ResponseRecorder {
	t.Helper()
	return app.do(t, http.MethodPost, "/addarticle", url.Values{
		"title":    {title},
		"subtitle": {subtitle},
		"author":   {author},
		"content":  {content},
	})
}

func formValues(fields map[string]string) url.Values {
	v := url.Values{}
	for k, val := range fields {
		v.Set(k, val)
	}
	return v
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != target {
		t.Fatalf("expected redirect to %s, got %s", target, loc)
	}
}
