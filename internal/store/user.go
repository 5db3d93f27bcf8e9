package store

import (
	"context"

	"github.com/phrazzld/tasklog-api/internal/domain"
)

// UserStore persists the credentials tokens are issued against.
type UserStore interface {
	// Create hashes user.Password, inserts the user and fills in ID and
	// HashedPassword. A taken username yields ErrUsernameExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername returns the user with its password hash, or
	// ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
