package ports

import (
	"context"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	User  domain.PublicUser
	Token string
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
