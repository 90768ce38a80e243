package services_test

import (
	"context"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	var txs []domain.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]domain.Transaction)
	}
	return txs, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsPage(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var txs []domain.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txs, next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// --- Mock SavingsGoalRepository ---
type MockSavingsGoalRepository struct {
	mock.Mock
}

func (m *MockSavingsGoalRepository) FindSavingsGoalByID(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID)
	var goal *domain.SavingsGoal
	if args.Get(0) != nil {
		goal = args.Get(0).(*domain.SavingsGoal)
	}
	return goal, args.Error(1)
}

func (m *MockSavingsGoalRepository) ListSavingsGoalsByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID)
	var goals []domain.SavingsGoal
	if args.Get(0) != nil {
		goals = args.Get(0).([]domain.SavingsGoal)
	}
	return goals, args.Error(1)
}

func (m *MockSavingsGoalRepository) SaveSavingsGoal(ctx context.Context, goal domain.SavingsGoal, contribution *domain.Transaction) error {
	args := m.Called(ctx, goal, contribution)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) UpdateSavingsGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) DeleteSavingsGoal(ctx context.Context, userID, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) ApplyContribution(ctx context.Context, userID, goalID string, amount decimal.Decimal, contribution domain.Transaction) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID, amount, contribution)
	var goal *domain.SavingsGoal
	if args.Get(0) != nil {
		goal = args.Get(0).(*domain.SavingsGoal)
	}
	return goal, args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}
