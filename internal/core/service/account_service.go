package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
)

// AccountService implements registration and login.
type AccountService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.UserRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// Register creates a new account with a bcrypt-hashed password. The username
// is checked first for a friendly conflict message; the unique index on the
// users collection closes the remaining check-then-insert race, surfacing as
// ErrUserExists from the repository.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and returns the matching user. A missing user
// and a wrong password both yield ErrInvalidCredentials so callers cannot
// enumerate usernames through the failure message.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Msg("login successful")
	return user, nil
}
