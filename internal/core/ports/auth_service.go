package ports

import (
	"context"

	"github.com/freelancehub/session-gateway/internal/core/domain"
)

// SignupInput carries the fields needed to open an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned by a successful login or signup.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
