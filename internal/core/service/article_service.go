package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
)

// ArticleService implements the ownership-scoped article operations.
type ArticleService struct {
	repo   ports.ArticleRepository
	logger zerolog.Logger
}

func NewArticleService(repo ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{repo: repo, logger: logger}
}

// ListAll returns every article for the public index, newest first.
func (s *ArticleService) ListAll(ctx context.Context) ([]domain.Article, error) {
	return s.repo.FindAll(ctx)
}

// ListByOwner returns the articles owned by username for the dashboard.
func (s *ArticleService) ListByOwner(ctx context.Context, owner string) ([]domain.Article, error) {
	return s.repo.FindByOwner(ctx, owner)
}

// Get retrieves a single article by id. Reads are public regardless of owner.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

// GetOwned retrieves an article only when owner matches. Used to pre-fill the
// edit form; a wrong id and a non-owned id are indistinguishable.
func (s *ArticleService) GetOwned(ctx context.Context, id, owner string) (*domain.Article, error) {
	return s.repo.FindByIDAndOwner(ctx, id, owner)
}

// Create persists a new article owned by in.Owner, stamping date_posted once.
func (s *ArticleService) Create(ctx context.Context, in ports.CreateArticleInput) (*domain.Article, error) {
	article := &domain.Article{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Author:   in.Author,
		Owner:    in.Owner,
		PostedAt: time.Now().UTC(),
		Content:  in.Content,
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", in.Owner).Msg("failed to create article")
		return nil, err
	}

	s.logger.Info().Str("article_id", created.ID).Str("owner", created.Owner).Msg("article created")
	return created, nil
}

// Update overwrites title/subtitle/author/content on the article matching
// (id, owner). When nothing matches the repository reports
// domain.ErrArticleNotFound and no row changes.
func (s *ArticleService) Update(ctx context.Context, id, owner string, in ports.UpdateArticleInput) error {
	err := s.repo.Update(ctx, id, owner, ports.ArticleUpdate{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Author:   in.Author,
		Content:  in.Content,
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("article_id", id).Str("owner", owner).Msg("article updated")
	return nil
}

// Delete removes the article matching (id, owner) irrevocably.
func (s *ArticleService) Delete(ctx context.Context, id, owner string) error {
	if err := s.repo.Delete(ctx, id, owner); err != nil {
		return err
	}

	s.logger.Info().Str("article_id", id).Str("owner", owner).Msg("article deleted")
	return nil
}
