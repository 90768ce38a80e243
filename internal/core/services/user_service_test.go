package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo, services.WithUserClock(fixedClock))
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{Username: " Alice ", Password: "correct horse", Name: "Alice"}
	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "alice" &&
			u.PasswordHash != "correct horse" &&
			utils.CheckPasswordHash("correct horse", u.PasswordHash) &&
			u.CreatedBy == u.UserID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", user.Username)
	assert.Equal(suite.T(), "Alice", user.Name)
	assert.Equal(suite.T(), fixedNow, user.CreatedAt)
}

func (suite *UserServiceTestSuite) TestCreateUser_Duplicate() {
	suite.mockRepo.On("SaveUser", suite.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(suite.ctx, dto.CreateUserRequest{Username: "alice", Password: "password123"})

	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	suite.mockRepo.On("FindUserByID", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(suite.ctx, "ghost")

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	hash, err := utils.HashPassword("password123")
	require.NoError(suite.T(), err)
	stored := &domain.User{UserID: "u1", Username: "alice", PasswordHash: hash}
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(stored, nil).Twice()
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "bob").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.AuthenticateUser(suite.ctx, "Alice", "password123")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u1", user.UserID)

	_, err = suite.service.AuthenticateUser(suite.ctx, "alice", "wrong-password")
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(suite.ctx, "bob", "password123")
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_StoreDown() {
	suite.mockRepo.On("FindUserByUsername", suite.ctx, "alice").Return(nil, apperrors.ErrConnectivity).Once()

	_, err := suite.service.AuthenticateUser(suite.ctx, "alice", "x")

	assert.ErrorIs(suite.T(), err, apperrors.ErrConnectivity)
	assert.NotErrorIs(suite.T(), err, apperrors.ErrUnauthorized)
}
