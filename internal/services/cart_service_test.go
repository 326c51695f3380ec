// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CartService
	buyer   *models.User
	lamp    *models.Product
	chair   *models.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewCartService(suite.db)

	suite.buyer = createBuyer(suite.T(), suite.db, "buyer@example.com")

	category := createCategory(suite.T(), suite.db, "Furniture")
	_, shop := createSellerWithShop(suite.T(), suite.db, "seller@example.com", "Home Goods")
	suite.lamp = createProduct(suite.T(), suite.db, shop.ID, category.ID, "Lamp", "10.00", 100)
	suite.chair = createProduct(suite.T(), suite.db, shop.ID, category.ID, "Chair", "49.99", 5)
}

func (suite *CartServiceTestSuite) TestAddLines() {
	cart, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{
			{ProductID: suite.lamp.ID, Quantity: 2},
			{ProductID: suite.chair.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)

	suite.Len(cart.Lines, 2)
	suite.Equal("69.99", cart.Total.StringFixed(2))
}

func (suite *CartServiceTestSuite) TestAddLinesRejectsDuplicate() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	_, err = suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 3}},
	})
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)

	// Quantity untouched
	cart, err := suite.service.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Lines, 1)
	suite.Equal(1, cart.Lines[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddLinesEnforcesStock() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.chair.ID, Quantity: 6}},
	})
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)

	cart, err := suite.service.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Empty(cart.Lines)
}

func (suite *CartServiceTestSuite) TestAddLinesRejectsUnknownProduct() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: uuid.New(), Quantity: 1}},
	})
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *CartServiceTestSuite) TestAddLinesRejectsClosedShop() {
	category := createCategory(suite.T(), suite.db, "Tools")
	_, closedShop := createSellerWithShop(suite.T(), suite.db, "closed@example.com", "Closed Shop")
	suite.Require().NoError(suite.db.Model(closedShop).Update("is_open", false).Error)
	hammer := createProduct(suite.T(), suite.db, closedShop.ID, category.ID, "Hammer", "7.50", 10)

	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: hammer.ID, Quantity: 1}},
	})
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *CartServiceTestSuite) TestUpdateLines() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 2}},
	})
	suite.Require().NoError(err)

	cart, err := suite.service.UpdateLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 5}},
	})
	suite.Require().NoError(err)

	suite.Require().Len(cart.Lines, 1)
	suite.Equal(5, cart.Lines[0].Quantity)
	suite.Equal("50.00", cart.Total.StringFixed(2))
}

func (suite *CartServiceTestSuite) TestUpdateLinesSkipsAbsentProducts() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 2}},
	})
	suite.Require().NoError(err)

	// Chair is not in the cart: the update must not create a line for it
	cart, err := suite.service.UpdateLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{
			{ProductID: suite.lamp.ID, Quantity: 4},
			{ProductID: suite.chair.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)

	suite.Require().Len(cart.Lines, 1)
	suite.Equal(suite.lamp.ID, cart.Lines[0].ProductID)
	suite.Equal(4, cart.Lines[0].Quantity)
}

func (suite *CartServiceTestSuite) TestRemoveLines() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{
			{ProductID: suite.lamp.ID, Quantity: 2},
			{ProductID: suite.chair.ID, Quantity: 1},
		},
	})
	suite.Require().NoError(err)

	err = suite.service.RemoveLines(suite.buyer.ID, &RemoveCartLinesRequest{
		ProductIDs: []uuid.UUID{suite.lamp.ID},
	})
	suite.Require().NoError(err)

	cart, err := suite.service.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Lines, 1)
	suite.Equal(suite.chair.ID, cart.Lines[0].ProductID)
}

func (suite *CartServiceTestSuite) TestRemoveLinesEmptySet() {
	err := suite.service.RemoveLines(suite.buyer.ID, &RemoveCartLinesRequest{})
	suite.Require().Error(err)
}

func (suite *CartServiceTestSuite) TestRemoveLinesIgnoresAbsentProducts() {
	_, err := suite.service.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{{ProductID: suite.lamp.ID, Quantity: 1}},
	})
	suite.Require().NoError(err)

	err = suite.service.RemoveLines(suite.buyer.ID, &RemoveCartLinesRequest{
		ProductIDs: []uuid.UUID{uuid.New()},
	})
	suite.Require().NoError(err)

	cart, err := suite.service.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Len(cart.Lines, 1)
}

func (suite *CartServiceTestSuite) TestViewEmptyCart() {
	cart, err := suite.service.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)

	suite.Empty(cart.Lines)
	suite.True(cart.Total.IsZero())
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
