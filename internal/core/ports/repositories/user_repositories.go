package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. A taken username yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
