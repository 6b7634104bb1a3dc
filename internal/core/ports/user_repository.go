package ports

import (
	"context"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
)

// UserRepository persists player accounts.
//
// Implementations must enforce uniqueness of username and email at the
// storage layer and report violations from CreateUser as
// domain.ErrEmailTaken or domain.ErrUsernameTaken.
type UserRepository interface {
	// FindUserByEmailOrUsername returns any user matching either field, or
	// domain.ErrUserNotFound.
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	// CreateUser assigns ID and CreatedAt when empty and returns the stored record.
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
}
