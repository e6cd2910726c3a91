package ports

import (
	"context"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
