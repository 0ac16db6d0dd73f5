// Package session implements per-client authentication state. The client
// holds a signed cookie carrying only an opaque session id; everything else
// (identity, pending flash notices) lives server-side in a key-value store
// and disappears when the session is cleared or expires.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when no document exists for the id.
var ErrNotFound = errors.New("session not found")

// Flash is a one-shot user-visible notice with a display category
// (success, danger, warning, info).
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Data is the server-side session document. A session with an empty
// Username is anonymous; it exists only to carry flash notices.
type Data struct {
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

// Store abstracts the key-value session backend (Redis in production).
type Store interface {
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Session couples a session id with its loaded document.
type Session struct {
	ID   string
	Data *Data
}

// Authenticated reports whether the session carries a logged-in identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Data != nil && s.Data.Username != ""
}

// Authenticate records the identity on the session document.
func (s *Session) Authenticate(username, email string) {
	s.Data.Username = username
	s.Data.Email = email
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(message, category string) {
	s.Data.Flashes = append(s.Data.Flashes, Flash{Message: message, Category: category})
}

// PopFlashes returns the queued notices and clears them. The caller is
// responsible for persisting the session afterwards.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Data.Flashes
	s.Data.Flashes = nil
	return flashes
}
