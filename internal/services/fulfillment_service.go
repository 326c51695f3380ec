// internal/services/fulfillment_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// FulfillmentService is the seller's view of orders. Each fulfillment
// covers exactly the slice of an order that belongs to one shop, and the
// seller only ever sees the order lines for their own products.
type FulfillmentService struct {
	db         *gorm.DB
	dispatcher events.Dispatcher
}

type UpdateFulfillmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// FulfillmentDetail is a fulfillment with the shop-scoped order lines
// and the destination address attached.
type FulfillmentDetail struct {
	Fulfillment  models.Fulfillment  `json:"fulfillment"`
	Lines        []models.OrderLine  `json:"lines"`
	ShippingNote models.ShippingNote `json:"shipping_note"`
}

func NewFulfillmentService(db *gorm.DB, dispatcher events.Dispatcher) *FulfillmentService {
	return &FulfillmentService{db: db, dispatcher: dispatcher}
}

// ListFulfillments returns the fulfillments addressed to the seller's
// shop, newest first.
func (s *FulfillmentService) ListFulfillments(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Fulfillment, int64, error) {
	shop, err := s.getOwnShop(sellerID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Fulfillment{}).Where("shop_id = ?", shop.ID)
	if params.Search != "" {
		query = query.Where("status = ?", params.Search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	query = query.Order("created_at desc")
	query = utils.ApplyPagination(query, params)

	var fulfillments []models.Fulfillment
	if err := query.Find(&fulfillments).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	return fulfillments, total, nil
}

// GetFulfillment returns one fulfillment with the order lines belonging
// to the seller's shop. Lines for other shops in the same order are
// never exposed.
func (s *FulfillmentService) GetFulfillment(id, sellerID uuid.UUID) (*FulfillmentDetail, error) {
	shop, err := s.getOwnShop(sellerID)
	if err != nil {
		return nil, err
	}

	fulfillment, err := s.getShopFulfillment(id, shop.ID)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.Preload("ShippingNote").First(&order, fulfillment.OrderID).Error; err != nil {
		return nil, NewStorageError(err)
	}

	var lines []models.OrderLine
	err = s.db.
		Select("order_lines.*").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("order_lines.order_id = ? AND products.shop_id = ?", fulfillment.OrderID, shop.ID).
		Preload("Product").
		Find(&lines).Error
	if err != nil {
		return nil, NewStorageError(err)
	}

	return &FulfillmentDetail{
		Fulfillment:  *fulfillment,
		Lines:        lines,
		ShippingNote: order.ShippingNote,
	}, nil
}

// UpdateStatus writes a new status on the fulfillment and emits a status
// change event. Any valid status is accepted; the workflow order is a
// convention between sellers and buyers, not a hard constraint.
func (s *FulfillmentService) UpdateStatus(id, sellerID uuid.UUID, req *UpdateFulfillmentStatusRequest) (*models.Fulfillment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := models.FulfillmentStatus(req.Status)
	if !status.IsValid() {
		return nil, NewValidationError("status", "unknown fulfillment status %q", req.Status)
	}

	shop, err := s.getOwnShop(sellerID)
	if err != nil {
		return nil, err
	}

	var fulfillment models.Fulfillment
	if err := s.db.First(&fulfillment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("fulfillment")
		}
		return nil, NewStorageError(err)
	}
	// Writes require ownership, not just visibility.
	if fulfillment.ShopID != shop.ID {
		return nil, NewPermissionError("fulfillment belongs to another shop")
	}

	if err := s.db.Model(&fulfillment).Update("status", status).Error; err != nil {
		return nil, NewStorageError(err)
	}
	fulfillment.Status = status

	logrus.WithFields(logrus.Fields{
		"fulfillment_id": fulfillment.ID,
		"shop_id":        shop.ID,
		"status":         status,
	}).Info("Fulfillment status updated")

	s.dispatcher.Dispatch(events.FulfillmentStatusChanged{
		FulfillmentID: fulfillment.ID,
		NewStatus:     status,
	})

	return &fulfillment, nil
}

func (s *FulfillmentService) getOwnShop(sellerID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Where("user_id = ?", sellerID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewPermissionError("you do not have a shop")
		}
		return nil, NewStorageError(err)
	}
	return &shop, nil
}

func (s *FulfillmentService) getShopFulfillment(id, shopID uuid.UUID) (*models.Fulfillment, error) {
	var fulfillment models.Fulfillment
	err := s.db.Where("id = ? AND shop_id = ?", id, shopID).First(&fulfillment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("fulfillment")
		}
		return nil, NewStorageError(err)
	}
	return &fulfillment, nil
}
