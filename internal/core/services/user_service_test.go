package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/expense_approval_app/internal/apperrors"
	"github.com/SscSPs/expense_approval_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approval_app/internal/core/ports/services"
	"github.com/SscSPs/expense_approval_app/internal/core/services"
	"github.com/SscSPs/expense_approval_app/internal/dto"
	"github.com/SscSPs/expense_approval_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_DefaultsToEmployeeAndHashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Asha Rao",
		Username: "asha.rao",
		Password: "s3cret-pass",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, req.Username).
		Return(nil, apperrors.NewNotFoundError("no user")).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == req.Username &&
			u.Role == domain.RoleEmployee &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleEmployee, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ManagerRoleHonored() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Vikram Shah",
		Username: "vikram.shah",
		Password: "s3cret-pass",
		Role:     "manager",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, req.Username).
		Return(nil, apperrors.NewNotFoundError("no user")).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleManager
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, user.Role)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Asha Rao",
		Username: "asha.rao",
		Password: "s3cret-pass",
	}

	suite.mockRepo.On("FindUserByUsername", ctx, req.Username).
		Return(&domain.User{Username: req.Username}, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
