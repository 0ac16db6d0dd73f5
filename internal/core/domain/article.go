package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

// Article is the core published entity. Owner is the username recorded at
// creation time; it never changes afterwards, and every mutating operation
// filters on (id, owner) rather than fetching first and comparing.
type Article struct {
	ID       string
	Title    string
	Subtitle string
	Author   string
	Owner    string
	PostedAt time.Time
	Content  string
}
