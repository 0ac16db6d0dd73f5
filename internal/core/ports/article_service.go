package ports

import (
	"context"

	"github.com/polatblog/blog-platform/internal/core/domain"
)

type CreateArticleInput struct {
	Owner    string
	Author   string
	Title    string
	Subtitle string
	Content  string
}

type UpdateArticleInput struct {
	Title    string
	Subtitle string
	Author   string
	Content  string
}

type ArticleService interface {
	ListAll(ctx context.Context) ([]domain.Article, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Article, error)
	Get(ctx context.Context, id string) (*domain.Article, error)
	GetOwned(ctx context.Context, id, owner string) (*domain.Article, error)
	Create(ctx context.Context, in CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id, owner string, in UpdateArticleInput) error
	Delete(ctx context.Context, id, owner string) error
}
