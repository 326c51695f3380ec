// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/database"
	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// OrderService converts carts into orders and exposes the buyer's order
// history. Conversion is atomic: prices are locked, stock is decremented
// and one fulfillment per involved shop is opened in a single transaction.
type OrderService struct {
	db             *gorm.DB
	dispatcher     events.Dispatcher
	convertTimeout time.Duration
}

type ConvertCartRequest struct {
	ShippingNoteID uuid.UUID `json:"shipping_note_id" validate:"required"`
}

func NewOrderService(db *gorm.DB, dispatcher events.Dispatcher, convertTimeout time.Duration) *OrderService {
	return &OrderService{
		db:             db,
		dispatcher:     dispatcher,
		convertTimeout: convertTimeout,
	}
}

// Convert turns the buyer's cart into an order. Product rows are locked
// for the duration of the transaction so the sold price and the stock
// decrement are consistent. The cart is drained on success; on any
// failure the cart is left untouched.
func (s *OrderService) Convert(ctx context.Context, buyerID uuid.UUID, req *ConvertCartRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.convertTimeout)
	defer cancel()

	var (
		order        *models.Order
		fulfillments []models.Fulfillment
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.ShippingNote
		err := tx.Where("id = ? AND user_id = ?", req.ShippingNoteID, buyerID).First(&note).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAddress
		}
		if err != nil {
			return NewStorageError(err)
		}

		var cart models.Cart
		if err := tx.Where("user_id = ?", buyerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return NewStorageError(err)
		}

		// Lock the lines so a cart mutation cannot interleave with the
		// conversion; it either fully precedes or fully follows it.
		var lines []models.CartLine
		if err := database.ForUpdate(tx).Where("cart_id = ?", cart.ID).Order("created_at").Find(&lines).Error; err != nil {
			return NewStorageError(err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		order = &models.Order{
			UserID:         buyerID,
			ShippingNoteID: note.ID,
		}
		if err := tx.Create(order).Error; err != nil {
			return NewStorageError(err)
		}

		shopIDs := make([]uuid.UUID, 0, 2)
		seen := make(map[uuid.UUID]bool)

		for _, line := range lines {
			var product models.Product
			if err := database.ForUpdate(tx).First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NewNotFoundError("product")
				}
				return NewStorageError(err)
			}

			if line.Quantity > product.StockQuantity {
				return NewValidationError("quantity",
					"product %s has only %d units in stock", product.Name, product.StockQuantity)
			}

			orderLine := &models.OrderLine{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				SoldPrice: product.Price,
			}
			if err := tx.Create(orderLine).Error; err != nil {
				return NewStorageError(err)
			}

			if err := tx.Model(&product).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
				return NewStorageError(err)
			}

			if !seen[product.ShopID] {
				seen[product.ShopID] = true
				shopIDs = append(shopIDs, product.ShopID)
			}
		}

		fulfillments = make([]models.Fulfillment, 0, len(shopIDs))
		for _, shopID := range shopIDs {
			fulfillment := models.Fulfillment{
				OrderID: order.ID,
				ShopID:  shopID,
				Status:  models.FulfillmentStatusNew,
			}
			if err := tx.Create(&fulfillment).Error; err != nil {
				return NewStorageError(err)
			}
			fulfillments = append(fulfillments, fulfillment)
		}

		lineIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			lineIDs = append(lineIDs, line.ID)
		}
		if err := tx.Where("id IN ?", lineIDs).Delete(&models.CartLine{}).Error; err != nil {
			return NewStorageError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"user_id":      buyerID,
		"fulfillments": len(fulfillments),
	}).Info("Cart converted to order")

	s.dispatcher.Dispatch(events.OrderCreated{OrderID: order.ID})
	for _, f := range fulfillments {
		s.dispatcher.Dispatch(events.FulfillmentCreated{FulfillmentID: f.ID})
	}

	return s.GetOrder(order.ID, buyerID)
}

// ListOrders returns the buyer's orders, newest first.
func (s *OrderService) ListOrders(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", buyerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	query = query.
		Preload("ShippingNote").
		Preload("Lines.Product").
		Preload("Fulfillments.Shop").
		Order("created_at desc")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	return orders, total, nil
}

func (s *OrderService) GetOrder(id, buyerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("ShippingNote").
		Preload("Lines.Product").
		Preload("Fulfillments.Shop").
		Where("id = ? AND user_id = ?", id, buyerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("order")
		}
		return nil, NewStorageError(err)
	}
	return &order, nil
}
