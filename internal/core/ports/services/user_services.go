package services

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks a username and password, returning apperrors.ErrUnauthorized on mismatch.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
