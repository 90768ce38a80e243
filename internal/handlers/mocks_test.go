package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) CheckAdmission(ctx context.Context, userID string, amount decimal.Decimal, incomeSourceID *string) (*domain.AdmissionDecision, error) {
	args := m.Called(ctx, userID, amount, incomeSourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdmissionDecision), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock SavingsService ---
type MockSavingsService struct {
	mock.Mock
}

func (m *MockSavingsService) ListGoals(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsService) GetGoal(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

func (m *MockSavingsService) Contribute(ctx context.Context, userID, goalID string, req dto.ContributionRequest) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

var _ portssvc.SavingsSvcFacade = (*MockSavingsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Overview(ctx context.Context, userID string) (*domain.BudgetOverview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetOverview), args.Error(1)
}

func (m *MockReportingService) CategoryBudgets(ctx context.Context, userID string) ([]domain.CategoryBudget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryBudget), args.Error(1)
}

func (m *MockReportingService) IncomeSources(ctx context.Context, userID string) ([]domain.IncomeSourceSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeSourceSummary), args.Error(1)
}

func (m *MockReportingService) IncomeSourceBalance(ctx context.Context, userID, sourceID string) (*domain.IncomeSourceSummary, error) {
	args := m.Called(ctx, userID, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeSourceSummary), args.Error(1)
}

func (m *MockReportingService) GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalProgress), args.Error(1)
}

func (m *MockReportingService) MonthlyReport(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthlyReport, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Mock Health ---
type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
