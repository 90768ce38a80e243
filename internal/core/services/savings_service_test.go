package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SavingsServiceTestSuite struct {
	suite.Suite
	goalRepo *MockSavingsGoalRepository
	txRepo   *MockTransactionRepository
	service  portssvc.SavingsSvcFacade
	ctx      context.Context
}

func (suite *SavingsServiceTestSuite) SetupTest() {
	suite.goalRepo = new(MockSavingsGoalRepository)
	suite.txRepo = new(MockTransactionRepository)
	suite.service = services.NewSavingsService(suite.goalRepo, suite.txRepo, services.WithSavingsClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *SavingsServiceTestSuite) TearDownTest() {
	suite.goalRepo.AssertExpectations(suite.T())
	suite.txRepo.AssertExpectations(suite.T())
}

func TestSavingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SavingsServiceTestSuite))
}

func laptopGoal() domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:        "g1",
		UserID:        testUserID,
		Name:          "Laptop",
		TargetAmount:  dec("400"),
		CurrentAmount: dec("150"),
		TargetDate:    time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_NoContribution() {
	req := dto.CreateSavingsGoalRequest{Name: " Laptop ", TargetAmount: dec("400"), TargetDate: "2024-06-01"}
	suite.goalRepo.On("SaveSavingsGoal", suite.ctx, mock.MatchedBy(func(g domain.SavingsGoal) bool {
		return g.Name == "Laptop" && g.CurrentAmount.IsZero() && g.UserID == testUserID
	}), (*domain.Transaction)(nil)).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), goal.GoalID)
	suite.txRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_OpeningBalance() {
	req := dto.CreateSavingsGoalRequest{
		Name:          "Laptop",
		TargetAmount:  dec("400"),
		CurrentAmount: dec("150"),
		TargetDate:    "2024-06-01",
	}
	suite.goalRepo.On("SaveSavingsGoal", suite.ctx,
		mock.MatchedBy(func(g domain.SavingsGoal) bool { return g.CurrentAmount.Equal(dec("150")) }),
		(*domain.Transaction)(nil),
	).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), goal.CurrentAmount.Equal(dec("150")))
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_OpeningBalancePlusContribution() {
	req := dto.CreateSavingsGoalRequest{
		Name:          "Laptop",
		TargetAmount:  dec("400"),
		CurrentAmount: dec("150"),
		TargetDate:    "2024-06-01",
		InitialContribution: &dto.ContributionRequest{
			Amount:         dec("50"),
			IncomeSourceID: strPtr("i2"),
		},
	}
	suite.txRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()
	suite.goalRepo.On("SaveSavingsGoal", suite.ctx,
		mock.MatchedBy(func(g domain.SavingsGoal) bool { return g.CurrentAmount.Equal(dec("200")) }),
		mock.MatchedBy(func(t *domain.Transaction) bool { return t != nil && t.Amount.Equal(dec("50")) }),
	).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), goal.CurrentAmount.Equal(dec("200")))
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_RejectsBadOpeningBalance() {
	for _, amount := range []string{"-1", "150.005"} {
		req := dto.CreateSavingsGoalRequest{
			Name:          "Laptop",
			TargetAmount:  dec("400"),
			CurrentAmount: dec(amount),
			TargetDate:    "2024-06-01",
		}
		_, err := suite.service.CreateGoal(suite.ctx, testUserID, req)
		assert.ErrorIs(suite.T(), err, apperrors.ErrValidation, amount)
	}
	suite.goalRepo.AssertNotCalled(suite.T(), "SaveSavingsGoal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_TargetDateMustBeFuture() {
	for _, date := range []string{"2024-03-15", "2024-01-01", "not-a-date"} {
		req := dto.CreateSavingsGoalRequest{Name: "Trip", TargetAmount: dec("100"), TargetDate: date}
		_, err := suite.service.CreateGoal(suite.ctx, testUserID, req)
		assert.ErrorIs(suite.T(), err, apperrors.ErrValidation, date)
	}
	suite.goalRepo.AssertNotCalled(suite.T(), "SaveSavingsGoal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_WithInitialContribution() {
	req := dto.CreateSavingsGoalRequest{
		Name:         "Laptop",
		TargetAmount: dec("400"),
		TargetDate:   "2024-06-01",
		InitialContribution: &dto.ContributionRequest{
			Amount:         dec("150"),
			IncomeSourceID: strPtr("i2"),
		},
	}
	suite.txRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()
	suite.goalRepo.On("SaveSavingsGoal", suite.ctx,
		mock.MatchedBy(func(g domain.SavingsGoal) bool { return g.CurrentAmount.Equal(dec("150")) }),
		mock.MatchedBy(func(t *domain.Transaction) bool {
			return t != nil &&
				t.Type == domain.Expense &&
				t.Category == domain.CategorySavings &&
				t.Description == "Contribution to savings goal: Laptop" &&
				t.Date.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) &&
				*t.IncomeSourceID == "i2"
		}),
	).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, testUserID, req)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), goal.CurrentAmount.Equal(dec("150")))
}

func (suite *SavingsServiceTestSuite) TestCreateGoal_ContributionRejected() {
	req := dto.CreateSavingsGoalRequest{
		Name:                "Laptop",
		TargetAmount:        dec("400"),
		TargetDate:          "2024-06-01",
		InitialContribution: &dto.ContributionRequest{Amount: dec("201"), IncomeSourceID: strPtr("i2")},
	}
	suite.txRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()

	_, err := suite.service.CreateGoal(suite.ctx, testUserID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientBalance)
	suite.goalRepo.AssertNotCalled(suite.T(), "SaveSavingsGoal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SavingsServiceTestSuite) TestContribute_Unscoped() {
	goal := laptopGoal()
	after := goal
	after.CurrentAmount = dec("200")
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "g1").Return(&goal, nil).Once()
	suite.goalRepo.On("ApplyContribution", suite.ctx, testUserID, "g1", dec("50"), mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Category == domain.CategorySavings && t.IncomeSourceID == nil
	})).Return(&after, nil).Once()

	updated, err := suite.service.Contribute(suite.ctx, testUserID, "g1", dto.ContributionRequest{Amount: dec("50")})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), updated.CurrentAmount.Equal(dec("200")))
	suite.txRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything)
}

func (suite *SavingsServiceTestSuite) TestContribute_ExactBalanceAdmitted() {
	goal := laptopGoal()
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "g1").Return(&goal, nil).Once()
	suite.txRepo.On("ListTransactionsByUser", suite.ctx, testUserID).Return(scenarioLedger(), nil).Once()
	suite.goalRepo.On("ApplyContribution", suite.ctx, testUserID, "g1", dec("380"), mock.Anything).Return(&goal, nil).Once()

	_, err := suite.service.Contribute(suite.ctx, testUserID, "g1", dto.ContributionRequest{Amount: dec("380"), IncomeSourceID: strPtr("i1")})

	assert.NoError(suite.T(), err)
}

func (suite *SavingsServiceTestSuite) TestContribute_GoalNotFound() {
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Contribute(suite.ctx, testUserID, "missing", dto.ContributionRequest{Amount: dec("1")})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *SavingsServiceTestSuite) TestContribute_NonPositiveAmount() {
	goal := laptopGoal()
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "g1").Return(&goal, nil).Once()

	_, err := suite.service.Contribute(suite.ctx, testUserID, "g1", dto.ContributionRequest{Amount: dec("-5")})

	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
}

func (suite *SavingsServiceTestSuite) TestUpdateGoal_PastDateAllowed() {
	goal := laptopGoal()
	past := "2023-01-01"
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "g1").Return(&goal, nil).Once()
	suite.goalRepo.On("UpdateSavingsGoal", suite.ctx, mock.MatchedBy(func(g domain.SavingsGoal) bool {
		return g.TargetDate.Year() == 2023 && g.LastUpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateGoal(suite.ctx, testUserID, "g1", dto.UpdateSavingsGoalRequest{TargetDate: &past})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2023, updated.TargetDate.Year())
}

func (suite *SavingsServiceTestSuite) TestDeleteGoal() {
	goal := laptopGoal()
	suite.goalRepo.On("FindSavingsGoalByID", suite.ctx, testUserID, "g1").Return(&goal, nil).Once()
	suite.goalRepo.On("DeleteSavingsGoal", suite.ctx, testUserID, "g1").Return(nil).Once()

	assert.NoError(suite.T(), suite.service.DeleteGoal(suite.ctx, testUserID, "g1"))
}
