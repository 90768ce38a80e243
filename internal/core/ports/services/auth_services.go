package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken returns a signed JWT for user and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// HealthSvc reports the availability of the backing store.
type HealthSvc interface {
	Ping(ctx context.Context) error
}
