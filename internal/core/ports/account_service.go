package ports

import (
	"context"

	"github.com/polatblog/blog-platform/internal/core/domain"
)

// RegisterInput carries the already form-validated registration fields.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
