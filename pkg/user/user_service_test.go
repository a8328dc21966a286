package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Sweet-Recipes-Backend/domain"
	"Sweet-Recipes-Backend/entities"
	"Sweet-Recipes-Backend/pkg/jwt"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.AutoMigrate(&entities.User{}))

	suite.service = NewUserService(NewUserRepository(suite.db), jwt.NewJWTService())
}

func (suite *UserServiceTestSuite) TestRegisterAndLogin() {
	registered, err := suite.service.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "motdepasse",
	})
	suite.Require().NoError(err)
	suite.Equal("alice", registered.Username)

	login, err := suite.service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "motdepasse",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(login.Token)

	me, err := suite.service.Me(context.Background(), registered.ID)
	suite.Require().NoError(err)
	suite.Equal("alice@example.com", me.Email)
}

func (suite *UserServiceTestSuite) TestRegisterRejectsDuplicates() {
	_, err := suite.service.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "motdepasse",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice2@example.com",
		Password: "motdepasse",
	})
	suite.ErrorIs(err, domain.ErrUsernameAlreadyExists)

	_, err = suite.service.Register(context.Background(), domain.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "motdepasse",
	})
	suite.ErrorIs(err, domain.ErrEmailAlreadyExists)
}

func (suite *UserServiceTestSuite) TestLoginRejectsBadCredentials() {
	_, err := suite.service.Register(context.Background(), domain.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "motdepasse",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "mauvais",
	})
	suite.ErrorIs(err, domain.ErrCredentialsInvalid)

	_, err = suite.service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "motdepasse",
	})
	suite.ErrorIs(err, domain.ErrCredentialsInvalid)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
