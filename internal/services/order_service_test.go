// internal/services/order_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	dispatcher  *recordingDispatcher
	service     *OrderService
	cartService *CartService

	buyer *models.User
	note  *models.ShippingNote
	shop1 *models.Shop
	shop2 *models.Shop
	lamp  *models.Product
	mug   *models.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.dispatcher = &recordingDispatcher{}
	suite.service = NewOrderService(suite.db, suite.dispatcher, 5*time.Second)
	suite.cartService = NewCartService(suite.db)

	suite.buyer = createBuyer(suite.T(), suite.db, "buyer@example.com")

	suite.note = &models.ShippingNote{
		UserID:  suite.buyer.ID,
		Country: "Kazakhstan",
		City:    "Almaty",
		Street:  "Abay Avenue",
		House:   "12",
		Phone:   "+7 700 000 0000",
	}
	suite.Require().NoError(suite.db.Create(suite.note).Error)

	category := createCategory(suite.T(), suite.db, "Home")
	_, suite.shop1 = createSellerWithShop(suite.T(), suite.db, "seller1@example.com", "Lamps & Co")
	_, suite.shop2 = createSellerWithShop(suite.T(), suite.db, "seller2@example.com", "Mug World")

	suite.lamp = createProduct(suite.T(), suite.db, suite.shop1.ID, category.ID, "Lamp", "10.00", 10)
	suite.mug = createProduct(suite.T(), suite.db, suite.shop2.ID, category.ID, "Mug", "5.00", 10)
}

func (suite *OrderServiceTestSuite) fillCart() {
	_, err := suite.cartService.AddLines(suite.buyer.ID, &CartLinesRequest{
		Lines: []CartLineRequest{
			{ProductID: suite.lamp.ID, Quantity: 2},
			{ProductID: suite.mug.ID, Quantity: 3},
		},
	})
	suite.Require().NoError(err)
}

func (suite *OrderServiceTestSuite) TestConvert() {
	suite.fillCart()

	order, err := suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().NoError(err)

	suite.Len(order.Lines, 2)
	suite.Equal("35.00", order.Total().StringFixed(2))
	suite.Equal(suite.note.ID, order.ShippingNoteID)

	// One fulfillment per involved shop, both freshly opened
	suite.Require().Len(order.Fulfillments, 2)
	shopIDs := map[uuid.UUID]bool{}
	for _, f := range order.Fulfillments {
		suite.Equal(models.FulfillmentStatusNew, f.Status)
		shopIDs[f.ShopID] = true
	}
	suite.True(shopIDs[suite.shop1.ID])
	suite.True(shopIDs[suite.shop2.ID])

	// Cart drained
	cart, err := suite.cartService.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Empty(cart.Lines)

	// Stock decremented
	var lamp, mug models.Product
	suite.Require().NoError(suite.db.First(&lamp, suite.lamp.ID).Error)
	suite.Require().NoError(suite.db.First(&mug, suite.mug.ID).Error)
	suite.Equal(8, lamp.StockQuantity)
	suite.Equal(7, mug.StockQuantity)

	suite.Len(suite.dispatcher.byType(events.TypeOrderCreated), 1)
	suite.Len(suite.dispatcher.byType(events.TypeFulfillmentCreated), 2)
}

func (suite *OrderServiceTestSuite) TestConvertLocksPrices() {
	suite.fillCart()

	order, err := suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().NoError(err)

	// A later price change must not touch the sold price
	err = suite.db.Model(&models.Product{}).
		Where("id = ?", suite.lamp.ID).
		Update("price", decimal.RequireFromString("99.99")).Error
	suite.Require().NoError(err)

	var lines []models.OrderLine
	suite.Require().NoError(suite.db.Where("order_id = ?", order.ID).Find(&lines).Error)
	for _, line := range lines {
		if line.ProductID == suite.lamp.ID {
			suite.Equal("10.00", line.SoldPrice.StringFixed(2))
		}
	}
}

func (suite *OrderServiceTestSuite) TestConvertEmptyCart() {
	_, err := suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, ErrEmptyCart)
}

func (suite *OrderServiceTestSuite) TestConvertForeignShippingNote() {
	suite.fillCart()

	other := createBuyer(suite.T(), suite.db, "other@example.com")
	foreignNote := &models.ShippingNote{
		UserID:  other.ID,
		Country: "Kazakhstan",
		City:    "Astana",
		Street:  "Left Bank",
		Phone:   "+7 700 111 1111",
	}
	suite.Require().NoError(suite.db.Create(foreignNote).Error)

	_, err := suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: foreignNote.ID,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, ErrInvalidAddress)

	// Cart intact
	cart, err := suite.cartService.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Len(cart.Lines, 2)
}

func (suite *OrderServiceTestSuite) TestConvertInsufficientStock() {
	suite.fillCart()

	// Stock shrank after the lines were added
	err := suite.db.Model(&models.Product{}).
		Where("id = ?", suite.mug.ID).
		Update("stock_quantity", 1).Error
	suite.Require().NoError(err)

	_, err = suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)

	// Nothing persisted, cart intact
	suite.assertNoOrderArtifacts()
}

func (suite *OrderServiceTestSuite) TestConvertIsAtomic() {
	suite.fillCart()

	// Fail the transaction at the very last step, after order, lines and
	// stock updates have been written inside it
	err := suite.db.Callback().Create().Before("gorm:create").Register("fail_fulfillment_create", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Fulfillment); ok {
			tx.AddError(errors.New("injected fulfillment failure"))
		}
	})
	suite.Require().NoError(err)

	_, err = suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().Error(err)

	suite.assertNoOrderArtifacts()

	// Stock untouched
	var lamp models.Product
	suite.Require().NoError(suite.db.First(&lamp, suite.lamp.ID).Error)
	suite.Equal(10, lamp.StockQuantity)

	suite.Empty(suite.dispatcher.byType(events.TypeOrderCreated))
}

func (suite *OrderServiceTestSuite) assertNoOrderArtifacts() {
	var orders, lines, fulfillments int64
	suite.Require().NoError(suite.db.Model(&models.Order{}).Count(&orders).Error)
	suite.Require().NoError(suite.db.Model(&models.OrderLine{}).Count(&lines).Error)
	suite.Require().NoError(suite.db.Model(&models.Fulfillment{}).Count(&fulfillments).Error)
	suite.Zero(orders)
	suite.Zero(lines)
	suite.Zero(fulfillments)

	cart, err := suite.cartService.ViewCart(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Len(cart.Lines, 2)
}

func (suite *OrderServiceTestSuite) TestGetOrderScopedToOwner() {
	suite.fillCart()

	order, err := suite.service.Convert(context.Background(), suite.buyer.ID, &ConvertCartRequest{
		ShippingNoteID: suite.note.ID,
	})
	suite.Require().NoError(err)

	other := createBuyer(suite.T(), suite.db, "other@example.com")
	_, err = suite.service.GetOrder(order.ID, other.ID)
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
