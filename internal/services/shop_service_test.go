// internal/services/shop_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

type ShopServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ShopService
	seller  *models.User
}

func (suite *ShopServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewShopService(suite.db)

	suite.seller = &models.User{
		Email:    "seller@example.com",
		UserType: models.UserTypeSeller,
		Status:   models.UserStatusActive,
	}
	suite.Require().NoError(suite.seller.SetPassword("Passw0rd"))
	suite.Require().NoError(suite.db.Create(suite.seller).Error)
}

func (suite *ShopServiceTestSuite) TestCreateShop() {
	category := createCategory(suite.T(), suite.db, "Home")

	shop, err := suite.service.CreateShop(suite.seller.ID, &CreateShopRequest{
		Name:        "Lamps & Co",
		CategoryIDs: []uuid.UUID{category.ID},
	})
	suite.Require().NoError(err)

	suite.Equal("Lamps & Co", shop.Name)
	suite.True(shop.IsOpen)
	suite.Require().Len(shop.Categories, 1)
	suite.Equal("Home", shop.Categories[0].Name)
}

func (suite *ShopServiceTestSuite) TestOneShopPerSeller() {
	_, err := suite.service.CreateShop(suite.seller.ID, &CreateShopRequest{Name: "First"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateShop(suite.seller.ID, &CreateShopRequest{Name: "Second"})
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
}

func (suite *ShopServiceTestSuite) TestShopNameUnique() {
	_, err := suite.service.CreateShop(suite.seller.ID, &CreateShopRequest{Name: "Lamps & Co"})
	suite.Require().NoError(err)

	other, _ := createSellerWithShop(suite.T(), suite.db, "other@example.com", "Other Shop")
	suite.Require().NoError(suite.db.Where("user_id = ?", other.ID).Delete(&models.Shop{}).Error)

	_, err = suite.service.CreateShop(other.ID, &CreateShopRequest{Name: "Lamps & Co"})
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
}

func (suite *ShopServiceTestSuite) TestUpdateShopClose() {
	_, err := suite.service.CreateShop(suite.seller.ID, &CreateShopRequest{Name: "Lamps & Co"})
	suite.Require().NoError(err)

	closed := false
	shop, err := suite.service.UpdateShop(suite.seller.ID, &UpdateShopRequest{IsOpen: &closed})
	suite.Require().NoError(err)
	suite.False(shop.IsOpen)

	// A closed shop disappears from the storefront
	shops, total, err := suite.service.ListOpenShops(utils.PaginationParams{Page: 1, Limit: 20})
	suite.Require().NoError(err)
	suite.EqualValues(0, total)
	suite.Empty(shops)
}

func (suite *ShopServiceTestSuite) TestGetOwnShopWithoutShop() {
	_, err := suite.service.GetOwnShop(suite.seller.ID)
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func TestShopServiceSuite(t *testing.T) {
	suite.Run(t, new(ShopServiceTestSuite))
}
