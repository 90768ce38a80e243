package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserClock overrides the clock used for audit timestamps.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.Clock = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new account. The caller becomes its own creator.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	userID := uuid.NewString()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = username
	}
	user := domain.User{
		UserID:       userID,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username '%s' is taken: %w", username, err)
		}
		s.LogError(ctx, err, "Failed to create user", slog.String("username", username))
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username in service: %w", err)
	}
	return user, nil
}

// AuthenticateUser checks a username and password pair. Unknown users and wrong passwords
// produce the same ErrUnauthorized.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login rejected", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}
