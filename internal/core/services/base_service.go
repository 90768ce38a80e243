package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.ErrorContext(ctx, msg, args...)
}

// LogWarn logs a rejected or unusual request that is not a server fault
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).WarnContext(ctx, msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).InfoContext(ctx, msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).DebugContext(ctx, msg, keyvals...)
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// Today returns the current calendar date.
func (s *BaseService) Today() time.Time {
	y, m, d := s.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LedgerLocks serializes the read-check-append sequence of the admission check per user.
// It is shared by every service that appends scoped expenses.
type LedgerLocks struct {
	locks sync.Map // userID -> *sync.Mutex
}

// NewLedgerLocks creates an empty lock table.
func NewLedgerLocks() *LedgerLocks {
	return &LedgerLocks{}
}

// Lock acquires the ledger lock of userID and returns its release function.
func (l *LedgerLocks) Lock(userID string) func() {
	mu, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}
