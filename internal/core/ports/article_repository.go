package ports

import (
	"context"

	"github.com/polatblog/blog-platform/internal/core/domain"
)

// ArticleUpdate names the only fields an edit may overwrite. Owner and
// date_posted are immutable and deliberately absent.
type ArticleUpdate struct {
	Title    string
	Subtitle string
	Author   string
	Content  string
}

// ArticleRepository defines the interface for article persistence. All
// mutating operations filter on (id, owner) in a single query so that a
// non-owner's request matches nothing.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindAll(ctx context.Context) ([]domain.Article, error)
	FindByOwner(ctx context.Context, owner string) ([]domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindByIDAndOwner(ctx context.Context, id, owner string) (*domain.Article, error)
	Update(ctx context.Context, id, owner string, fields ArticleUpdate) error
	Delete(ctx context.Context, id, owner string) error
}
