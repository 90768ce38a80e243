package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	ctx      context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo, services.WithTransactionClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *TransactionServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_SortsNewestFirst() {
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()

	txs, err := suite.service.ListTransactions(suite.ctx, testUserID)

	require.NoError(suite.T(), err)
	require.Len(suite.T(), txs, 5)
	assert.Equal(suite.T(), "e3", txs[0].TransactionID)
	assert.Equal(suite.T(), "i1", txs[4].TransactionID)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_ClampsLimit() {
	suite.mockRepo.On("ListTransactionsPage", suite.ctx, testUserID, 100, (*string)(nil)).Return([]domain.Transaction{}, nil, nil).Once()

	_, next, err := suite.service.ListTransactionsPage(suite.ctx, testUserID, 5000, nil)

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), next)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_DefaultLimit() {
	token := pagination.EncodeToken(pagination.Cursor{Date: fixedNow, CreatedAt: fixedNow, ID: "e1"})
	suite.mockRepo.On("ListTransactionsPage", suite.ctx, testUserID, 20, &token).Return([]domain.Transaction{}, nil, nil).Once()

	_, _, err := suite.service.ListTransactionsPage(suite.ctx, testUserID, 0, &token)

	require.NoError(suite.T(), err)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_InvalidToken() {
	bad := "%%%not-a-token"

	_, _, err := suite.service.ListTransactionsPage(suite.ctx, testUserID, 10, &bad)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Income() {
	req := dto.CreateTransactionRequest{
		Amount:   dec("1200"),
		Type:     domain.Income,
		Category: domain.CategoryJob,
		Date:     "2024-03-01",
	}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Type == domain.Income && t.Amount.Equal(dec("1200")) && t.UserID == testUserID && t.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), txn.TransactionID)
	assert.Nil(suite.T(), txn.IncomeSourceID)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ScopedExpenseAdmitted() {
	req := dto.CreateTransactionRequest{
		Amount:         dec("380"),
		Type:           domain.Expense,
		Category:       domain.CategoryHousing,
		Date:           "2024-03-10",
		IncomeSourceID: strPtr(" i1 "),
	}
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.IncomeSourceID != nil && *t.IncomeSourceID == "i1"
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "i1", *txn.IncomeSourceID)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ScopedExpenseRejected() {
	req := dto.CreateTransactionRequest{
		Amount:         dec("380.01"),
		Type:           domain.Expense,
		Category:       domain.CategoryHousing,
		Date:           "2024-03-10",
		IncomeSourceID: strPtr("i1"),
	}
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)

	require.Error(suite.T(), err)
	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.Contains(suite.T(), err.Error(), "remaining 380.00")
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownSource() {
	req := dto.CreateTransactionRequest{
		Amount:         dec("10"),
		Type:           domain.Expense,
		Category:       domain.CategoryFood,
		Date:           "2024-03-10",
		IncomeSourceID: strPtr("e1"), // an expense is not an income source
	}
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)

	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	assert.False(suite.T(), errors.Is(err, apperrors.ErrInsufficientBalance))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationErrors() {
	testCases := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{"bad date", dto.CreateTransactionRequest{Amount: dec("1"), Type: domain.Expense, Category: domain.CategoryFood, Date: "03/10/2024"}},
		{"zero amount", dto.CreateTransactionRequest{Amount: dec("0"), Type: domain.Expense, Category: domain.CategoryFood, Date: "2024-03-10"}},
		{"income category on expense", dto.CreateTransactionRequest{Amount: dec("1"), Type: domain.Expense, Category: domain.CategoryJob, Date: "2024-03-10"}},
		{"recurring without period", dto.CreateTransactionRequest{Amount: dec("1"), Type: domain.Income, Category: domain.CategoryJob, Date: "2024-03-10", Recurring: true}},
		{"income with source", dto.CreateTransactionRequest{Amount: dec("1"), Type: domain.Income, Category: domain.CategoryJob, Date: "2024-03-10", IncomeSourceID: strPtr("i1")}},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.service.CreateTransaction(suite.ctx, testUserID, tc.req)
			require.Error(suite.T(), err)
			assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RepoErrorPropagates() {
	req := dto.CreateTransactionRequest{Amount: dec("5"), Type: domain.Expense, Category: domain.CategoryFood, Date: "2024-03-10"}
	suite.mockRepo.On("SaveTransaction", suite.ctx, mock.Anything).Return(apperrors.ErrConnectivity).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, testUserID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConnectivity)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReadmitsWithoutOldAmount() {
	ledger := scenarioLedger()
	existing := ledger[2] // e1: 120 from i1, remaining 380
	newAmount := dec("500")
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "e1").Return(&existing, nil).Once()
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(ledger, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.TransactionID == "e1" && t.Amount.Equal(newAmount) && t.LastUpdatedBy == testUserID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, testUserID, "e1", dto.UpdateTransactionRequest{Amount: &newAmount})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.Amount.Equal(newAmount))
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_RejectsOverBalance() {
	ledger := scenarioLedger()
	existing := ledger[2]
	newAmount := dec("500.01")
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "e1").Return(&existing, nil).Once()
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(ledger, nil).Once()

	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, "e1", dto.UpdateTransactionRequest{Amount: &newAmount})

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_DescriptionOnlySkipsAdmission() {
	existing := scenarioLedger()[2]
	desc := "groceries"
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "e1").Return(&existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, testUserID, "e1", dto.UpdateTransactionRequest{Description: &desc})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "groceries", updated.Description)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ClearSource() {
	existing := scenarioLedger()[2]
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "e1").Return(&existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.IncomeSourceID == nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, testUserID, "e1", dto.UpdateTransactionRequest{IncomeSourceID: strPtr("")})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), updated.IsScoped())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateTransaction(suite.ctx, testUserID, "missing", dto.UpdateTransactionRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	existing := scenarioLedger()[0]
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "i1").Return(&existing, nil).Once()
	suite.mockRepo.On("DeleteTransaction", suite.ctx, testUserID, "i1").Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, testUserID, "i1")

	assert.NoError(suite.T(), err)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	suite.mockRepo.On("FindTransactionByID", suite.ctx, testUserID, "nope").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(suite.ctx, testUserID, "nope")

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCheckAdmission() {
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Twice()

	ok, err := suite.service.CheckAdmission(suite.ctx, testUserID, dec("200"), strPtr("i2"))
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok.Admitted)
	assert.True(suite.T(), ok.Remaining.Equal(dec("200")))

	rejected, err := suite.service.CheckAdmission(suite.ctx, testUserID, dec("200.01"), strPtr("i2"))
	require.NoError(suite.T(), err)
	assert.False(suite.T(), rejected.Admitted)
}

func (suite *TransactionServiceTestSuite) TestCheckAdmission_Unscoped() {
	decision, err := suite.service.CheckAdmission(suite.ctx, testUserID, dec("99999"), nil)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), decision.Admitted)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCheckAdmission_UnknownSource() {
	suite.mockRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()

	_, err := suite.service.CheckAdmission(suite.ctx, testUserID, dec("1"), strPtr("ghost"))

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}
