package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the name of the client-side session cookie.
	CookieName = "blog_session"

	defaultTTL = 24 * time.Hour
)

// Manager mints, loads, persists and destroys sessions. The cookie value is
// an HS256-signed token wrapping the session id, so a tampered cookie never
// reaches the store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// Load resolves the request's session from its cookie. A missing cookie, a
// bad signature, or an expired/cleared store document all mean the request
// is anonymous, reported as (nil, nil).
func (m *Manager) Load(c echo.Context) (*Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sid, ok := m.verify(cookie.Value)
	if !ok {
		return nil, nil
	}

	data, err := m.store.Get(c.Request().Context(), sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Session{ID: sid, Data: data}, nil
}

// Start creates a fresh anonymous session and sets its cookie on the
// response. The session is not persisted until Save is called.
func (m *Manager) Start(c echo.Context) (*Session, error) {
	sid := uuid.NewString()

	signed, err := m.sign(sid)
	if err != nil {
		return nil, err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return &Session{ID: sid, Data: &Data{}}, nil
}

// Save persists the session document with the configured TTL.
func (m *Manager) Save(c echo.Context, s *Session) error {
	return m.store.Save(c.Request().Context(), s.ID, s.Data, m.ttl)
}

// Destroy deletes the server-side document and expires the cookie. Every
// session attribute goes with the document; nothing survives for a later
// request reusing the slot.
func (m *Manager) Destroy(c echo.Context, s *Session) error {
	if err := m.store.Delete(c.Request().Context(), s.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) sign(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) verify(token string) (string, bool) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	sid, _ := claims["sid"].(string)
	return sid, sid != ""
}
