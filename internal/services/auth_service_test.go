// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/config"
	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())

	utils.SetJWTSecret("test-secret")
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 24
	cfg.JWT.RefreshTokenTTL = 168

	suite.service = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) registerRequest(email string, userType models.UserType) *RegisterRequest {
	return &RegisterRequest{
		Email:    email,
		Password: "Passw0rd1",
		UserType: userType,
	}
}

func (suite *AuthServiceTestSuite) TestRegisterBuyerGetsCart() {
	resp, err := suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.Equal("Bearer", resp.TokenType)

	var cart models.Cart
	err = suite.db.Where("user_id = ?", resp.User.ID).First(&cart).Error
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestRegisterSellerHasNoCart() {
	resp, err := suite.service.Register(suite.registerRequest("seller@example.com", models.UserTypeSeller))
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Cart{}).Where("user_id = ?", resp.User.ID).Count(&count).Error)
	suite.Zero(count)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().NoError(err)

	_, err = suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
}

func (suite *AuthServiceTestSuite) TestRegisterRejectsStaffType() {
	_, err := suite.service.Register(suite.registerRequest("staff@example.com", models.UserTypeStaff))
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	_, err := suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().NoError(err)

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "buyer@example.com",
		Password: "Passw0rd1",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(resp.AccessToken)
	suite.NotNil(resp.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().NoError(err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "buyer@example.com",
		Password: "WrongPass1",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginSuspendedUser() {
	resp, err := suite.service.Register(suite.registerRequest("buyer@example.com", models.UserTypeBuyer))
	suite.Require().NoError(err)

	err = suite.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("status", models.UserStatusSuspended).Error
	suite.Require().NoError(err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "buyer@example.com",
		Password: "Passw0rd1",
	})
	suite.Error(err)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
