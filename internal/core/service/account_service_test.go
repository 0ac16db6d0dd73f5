package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/polatblog/blog-platform/internal/core/domain"
	"github.com/polatblog/blog-platform/internal/core/ports"
)

func registerInput(username, email, password string) ports.RegisterInput {
	return ports.RegisterInput{Username: username, Email: email, Password: password}
}

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAccountService(repo *stubUserRepo) *AccountService {
	return NewAccountService(repo, zerolog.Nop())
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	user, err := svc.Register(context.Background(), registerInput("alice", "a@x.com", "pw1234"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.PasswordHash == "pw1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
}

func TestAccountService_Register_ThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	if _, err := svc.Register(context.Background(), registerInput("alice", "a@x.com", "pw1234")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "alice", "pw1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "alice" || user.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	_, _ = svc.Register(context.Background(), registerInput("bob", "bob@example.com", "pass"))

	before := len(repo.users)
	if _, err := svc.Register(context.Background(), registerInput("bob", "other@example.com", "pass2")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != before {
		t.Fatalf("duplicate registration created a row")
	}
}

func TestAccountService_Register_DuplicateFromIndex(t *testing.T) {
	// Simulates the race where the pre-insert check passes but the unique
	// index rejects the insert.
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUserExists
	svc := newAccountService(repo)

	if _, err := svc.Register(context.Background(), registerInput("carol", "c@x.com", "pass")); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccountService_Register_EmptyFields(t *testing.T) {
	svc := newAccountService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), registerInput("", "a@x.com", "pass")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("dave", "d@x.com", "")); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAccountService(repo)

	_, _ = svc.Register(context.Background(), registerInput("dave", "dave@example.com", "goodpass"))
	if _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	svc := newAccountService(newStubUserRepo())

	// Same failure as a wrong password, so usernames cannot be enumerated.
	if _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
